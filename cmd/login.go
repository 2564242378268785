package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	statusadapter "github.com/bnema/pitchside/internal/adapters/render/status"
	"github.com/bnema/pitchside/internal/application"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string
	var view string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt := newPrompter(cmd)
			var err error
			if strings.TrimSpace(email) == "" {
				if email, err = prompt.line("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt.secret("Password: "); err != nil {
					return err
				}
			}

			app.router.Enter(domain.SignInPath)
			var user domain.User
			err = statusadapter.RunProgress(cmd.Context(), statusadapter.ProgressOptions{
				Label:  "Signing in...",
				Output: cmd.ErrOrStderr(),
				Input:  terminalInput(cmd),
			}, func(ctx context.Context) error {
				signedIn, err := app.sessions.SignIn(ctx, application.SignInCommand{
					Credentials: domain.Credentials{Email: strings.TrimSpace(email), Password: password},
					View:        view,
				})
				user = signedIn
				return err
			})
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			app.router.Enter(view)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.DisplayName(), user.Role.Label())
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when empty)")
	cmd.Flags().StringVar(&view, "view", domain.HomePath, "View to land on after signing in")

	return cmd
}

func newSignUpCmd(app *app) *cobra.Command {
	var reg domain.Registration
	var role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Password == "" {
				password, err := newPrompter(cmd).secret("Password: ")
				if err != nil {
					return err
				}
				reg.Password = password
			}
			reg.Role = domain.ParseRole(role)

			app.router.Enter(domain.SignUpPath)
			user, err := app.sessions.SignUp(cmd.Context(), reg)
			if err != nil {
				return fmt.Errorf("sign up: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s. Sign in with: pitchside login --email %s\n",
				user.DisplayName(), user.Role.Label(), reg.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&reg.Username, "username", "", "Username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Account password (prompted when empty)")
	cmd.Flags().StringVar(&reg.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleFan), "Role (organizer|club_manager|player|fan)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

// prompter reads answers from the command input. Secrets are read without
// echo when the input is a terminal.
type prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, out: cmd.ErrOrStderr(), reader: bufio.NewReader(in)}
}

func (p *prompter) line(label string) (string, error) {
	answer, err := p.read(label)
	return strings.TrimSpace(answer), err
}

func (p *prompter) read(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)
	answer, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(answer, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	file, ok := p.in.(*os.File)
	if !ok || !isTerminal(file) {
		return p.read(label)
	}

	_, _ = fmt.Fprint(p.out, label)
	raw, err := term.ReadPassword(int(file.Fd()))
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

// terminalInput returns the command input when it is a terminal, so progress
// indicators can listen for the cancel keys. Piped input stays untouched.
func terminalInput(cmd *cobra.Command) io.Reader {
	if file, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(file) {
		return file
	}
	return nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
