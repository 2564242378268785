package status

import (
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const dateLayout = "2006-01-02"

// RenderTournaments lays out the tournament list as a table.
func RenderTournaments(tournaments []domain.Tournament) (string, error) {
	return renderReport(func(s styles) string {
		return renderTournamentTable(tournaments, s)
	})
}

func renderTournamentTable(tournaments []domain.Tournament, s styles) string {
	if len(tournaments) == 0 {
		return s.empty.Render("No tournaments.")
	}

	rows := make([][]string, 0, len(tournaments))
	for _, t := range tournaments {
		rows = append(rows, []string{
			string(t.ID),
			t.Name,
			orDash(t.Status),
			orDash(t.Location),
			DateRange(t.StartDate, t.EndDate),
		})
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "NAME", "STATUS", "LOCATION", "DATES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.PaddingRight(1)
			}
			if col == 1 {
				return s.user.PaddingRight(1)
			}
			return s.detail.PaddingRight(1)
		}).
		String()
}

// DateRange prints a start and end date the way the list shows them.
func DateRange(start, end time.Time) string {
	switch {
	case start.IsZero() && end.IsZero():
		return "-"
	case end.IsZero():
		return start.Format(dateLayout)
	case start.IsZero():
		return "until " + end.Format(dateLayout)
	default:
		return start.Format(dateLayout) + " to " + end.Format(dateLayout)
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
