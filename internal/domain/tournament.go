package domain

import (
	"fmt"
	"strings"
	"time"
)

type TournamentID string

type Tournament struct {
	ID        TournamentID
	Name      string
	Status    string
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

type NewTournament struct {
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

func (t NewTournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("tournament ends before it starts")
	}
	return nil
}

// TournamentManagers are the roles allowed to create tournaments.
var TournamentManagers = []Role{RoleAdmin, RoleOrganizer}
