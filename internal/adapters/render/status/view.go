package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/application"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now     time.Time
	BaseURL string
	Cookies CookieState
}

// CookieState describes the session cookies held locally.
type CookieState struct {
	Access          bool
	AccessExpiresAt time.Time
	Refresh         bool
}

func renderSession(status application.SessionStatus, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Pitchside session")}
	if opts.BaseURL != "" {
		lines = append(lines, s.header.Render("api: "+opts.BaseURL))
	}

	session := status.Session
	if !session.Present() {
		lines = append(lines, s.section.Render(s.empty.Render("Not signed in.")))
		lines = append(lines, cookieLines(opts, s)...)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	user := session.User
	parts := []string{s.user.Render(userTitle(*user))}
	parts = append(parts, field(s, "role", user.Role.Label()))
	if strings.TrimSpace(status.View) != "" {
		parts = append(parts, field(s, "view", status.View))
	}
	if !status.SavedAt.IsZero() {
		parts = append(parts, field(s, "saved", formatSince(status.SavedAt, opts.Now)))
	}
	if status.Verified {
		parts = append(parts, s.key.Render("verified:")+" "+s.ok.Render("yes"))
	} else {
		parts = append(parts, field(s, "verified", "no (run with --verify)"))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	lines = append(lines, cookieLines(opts, s)...)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cookieLines(opts RenderOptions, s styles) []string {
	access := s.warning.Render("none")
	if opts.Cookies.Access {
		access = formatExpiry(opts.Cookies.AccessExpiresAt, opts.Now, s)
	}
	refresh := s.warning.Render("none")
	if opts.Cookies.Refresh {
		refresh = s.ok.Render("present")
	}

	return []string{
		s.section.Render(s.key.Render("access cookie:") + " " + access),
		s.key.Render("refresh cookie:") + " " + refresh,
	}
}

func field(s styles, key, value string) string {
	return s.key.Render(key+":") + " " + s.detail.Render(value)
}

func userTitle(user domain.User) string {
	name := user.DisplayName()
	email := strings.TrimSpace(user.Email)
	if email == "" || email == name {
		return "Signed in as " + name
	}
	return fmt.Sprintf("Signed in as %s (%s)", name, email)
}

func formatExpiry(expiresAt, now time.Time, s styles) string {
	if expiresAt.IsZero() {
		return s.detail.Render("present")
	}
	if now.IsZero() {
		return s.detail.Render("expires " + expiresAt.Format(time.RFC3339))
	}
	if !expiresAt.After(now) {
		return s.warning.Render("expired (refreshed on next call)")
	}
	remaining := expiresAt.Sub(now)
	style := lipgloss.NewStyle().Foreground(interpolateColor(remaining.Minutes(), 0, 15))
	return style.Render("expires in " + humanDuration(remaining))
}

func formatSince(at, now time.Time) string {
	if now.IsZero() || at.After(now) {
		return at.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s (%s ago)", at.Format("15:04 on 02 Jan"), humanDuration(now.Sub(at)))
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return plural(int(math.Max(1, math.Round(d.Seconds()))), "second")
	case d < time.Hour:
		return plural(int(math.Round(d.Minutes())), "minute")
	case d < 24*time.Hour:
		return plural(int(math.Round(d.Hours())), "hour")
	default:
		return plural(int(math.Round(d.Hours()/24)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// interpolateColor fades from grey at min to bright white at max on the
// 256-colour greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	return lipgloss.Color(fmt.Sprintf("%d", int(baseColor+(targetColor-baseColor)*normalized)))
}
