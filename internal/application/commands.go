package application

import "github.com/bnema/pitchside/internal/domain"

type SignInCommand struct {
	Credentials domain.Credentials
	// View is the path the user signs in from; it is kept in the snapshot.
	View string
}

type CreateTournamentCommand struct {
	Tournament domain.NewTournament
}
