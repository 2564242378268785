package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
)

const (
	tournamentsPath = "/tournaments/"
	dateLayout      = "2006-01-02"
)

// TournamentService is a thin pass-through to the tournament endpoints.
// Listing is public; creating is limited to admins and organizers.
type TournamentService struct {
	api      ports.API
	sessions *SessionService
	clock    ports.Clock
}

func NewTournamentService(api ports.API, sessions *SessionService, clock ports.Clock) *TournamentService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &TournamentService{api: api, sessions: sessions, clock: clock}
}

func (s *TournamentService) List(ctx context.Context) (TournamentList, error) {
	var raw json.RawMessage
	if err := s.api.JSON(ctx, http.MethodGet, tournamentsPath, nil, &raw); err != nil {
		return TournamentList{}, fmt.Errorf("list tournaments: %w", err)
	}

	payloads, err := decodeTournamentList(raw)
	if err != nil {
		return TournamentList{}, fmt.Errorf("list tournaments: %w", err)
	}

	tournaments := make([]domain.Tournament, 0, len(payloads))
	for _, payload := range payloads {
		tournaments = append(tournaments, payload.toDomain())
	}
	return TournamentList{Tournaments: tournaments, FetchedAt: s.clock.Now()}, nil
}

func (s *TournamentService) Create(ctx context.Context, cmd CreateTournamentCommand) (domain.Tournament, error) {
	if _, err := s.sessions.RequireRole(domain.TournamentManagers...); err != nil {
		return domain.Tournament{}, err
	}
	if err := cmd.Tournament.Validate(); err != nil {
		return domain.Tournament{}, err
	}

	request := tournamentPayload{
		Name:      strings.TrimSpace(cmd.Tournament.Name),
		Location:  strings.TrimSpace(cmd.Tournament.Location),
		StartDate: formatDate(cmd.Tournament.StartDate),
		EndDate:   formatDate(cmd.Tournament.EndDate),
	}

	var created tournamentPayload
	if err := s.api.JSON(ctx, http.MethodPost, tournamentsPath, request, &created); err != nil {
		return domain.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}
	return created.toDomain(), nil
}

type tournamentPayload struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Name      string          `json:"name"`
	Status    string          `json:"status,omitempty"`
	Location  string          `json:"location,omitempty"`
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
}

func (p tournamentPayload) toDomain() domain.Tournament {
	return domain.Tournament{
		ID:        domain.TournamentID(strings.Trim(string(bytes.TrimSpace(p.ID)), `"`)),
		Name:      p.Name,
		Status:    p.Status,
		Location:  p.Location,
		StartDate: parseDate(p.StartDate),
		EndDate:   parseDate(p.EndDate),
	}
}

// decodeTournamentList accepts a bare array or a paginated {"results": [...]}.
func decodeTournamentList(raw json.RawMessage) ([]tournamentPayload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []tournamentPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode tournaments: %w", err)
		}
		return list, nil
	}

	var page struct {
		Results []tournamentPayload `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode tournaments: %w", err)
	}
	return page.Results, nil
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateLayout)
}
