package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/pitchside/internal/adapters/render/status"
	"github.com/bnema/pitchside/internal/application"
	"github.com/spf13/cobra"
)

const profileView = "/profile"

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var verify bool
	var view string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := app.restored
			if verify {
				app.router.Enter(view)
				verified, err := app.sessions.Verify(cmd.Context())
				if err != nil {
					return fmt.Errorf("verify session: %w", err)
				}
				status = verified
			}
			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the session with the backend")
	cmd.Flags().StringVar(&view, "view", profileView, "View the check runs from; public views never sign you out")

	return cmd
}

type statusOutput struct {
	SignedIn        bool        `json:"signed_in"`
	User            *userOutput `json:"user,omitempty"`
	View            string      `json:"view,omitempty"`
	SavedAt         *time.Time  `json:"saved_at,omitempty"`
	Verified        bool        `json:"verified"`
	AccessCookie    bool        `json:"access_cookie"`
	AccessExpiresAt *time.Time  `json:"access_expires_at,omitempty"`
	RefreshCookie   bool        `json:"refresh_cookie"`
}

type userOutput struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.SessionStatus, asJSON bool) error {
	cookies := cookieState(app)

	if asJSON {
		out := statusOutput{
			SignedIn:      status.Session.Present(),
			View:          status.View,
			Verified:      status.Verified,
			AccessCookie:  cookies.Access,
			RefreshCookie: cookies.Refresh,
		}
		if user := status.Session.User; status.Session.Present() {
			out.User = &userOutput{
				ID:       string(user.ID),
				Username: user.Username,
				Email:    user.Email,
				FullName: user.FullName,
				Role:     string(user.Role),
			}
		}
		if !status.SavedAt.IsZero() {
			out.SavedAt = &status.SavedAt
		}
		if !cookies.AccessExpiresAt.IsZero() {
			out.AccessExpiresAt = &cookies.AccessExpiresAt
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Now:     app.now(),
		BaseURL: app.cfg.API.BaseURL,
		Cookies: cookies,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func cookieState(app *app) statusadapter.CookieState {
	state := statusadapter.CookieState{
		Access:  app.jar.AccessToken() != "",
		Refresh: app.jar.HasRefreshToken(),
	}
	if state.Access {
		if claims, err := app.jar.AccessClaims(); err == nil {
			state.AccessExpiresAt = claims.ExpiresAt
		}
	}
	return state
}
