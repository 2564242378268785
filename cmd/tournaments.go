package cmd

import (
	"fmt"
	"strings"
	"time"

	statusadapter "github.com/bnema/pitchside/internal/adapters/render/status"
	"github.com/bnema/pitchside/internal/application"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/spf13/cobra"
)

const (
	tournamentsView   = "/tournaments"
	newTournamentView = "/dashboard/tournaments/new"
	dateFlagLayout    = "2006-01-02"
)

func newTournamentsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournaments",
		Short: "List and create tournaments",
	}

	cmd.AddCommand(newTournamentsListCmd(app), newTournamentsCreateCmd(app))

	return cmd
}

func newTournamentsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.router.Enter(tournamentsView)
			list, err := app.tournaments.List(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := statusadapter.RenderTournaments(list.Tournaments)
			if err != nil {
				return fmt.Errorf("render tournaments: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newTournamentsCreateCmd(app *app) *cobra.Command {
	var name string
	var location string
	var start string
	var end string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament (admins and organizers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			app.router.Enter(newTournamentView)
			created, err := app.tournaments.Create(cmd.Context(), application.CreateTournamentCommand{
				Tournament: domain.NewTournament{
					Name:      name,
					Location:  location,
					StartDate: startDate,
					EndDate:   endDate,
				},
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created tournament %s (%s)\n", created.Name, created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name")
	cmd.Flags().StringVar(&location, "location", "", "Venue or city")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func parseDateFlag(flag, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateFlagLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a date like 2026-06-01: %w", flag, err)
	}
	return parsed, nil
}
