package application

import (
	"time"

	"github.com/bnema/pitchside/internal/domain"
)

// SessionStatus is what the status command reports about the local session.
type SessionStatus struct {
	Session  domain.Session
	View     string
	SavedAt  time.Time
	Verified bool
}

type TournamentList struct {
	Tournaments []domain.Tournament
	FetchedAt   time.Time
}
