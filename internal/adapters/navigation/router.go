package navigation

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"pkt.systems/pslog"
)

// Router tracks the view the command line is acting on and consumes the
// navigation commands emitted on teardown.
type Router struct {
	mu      sync.Mutex
	current string
	history []domain.NavigationCommand
	notice  io.Writer
}

var _ ports.Navigator = (*Router)(nil)

func NewRouter(initial string, notice io.Writer) *Router {
	return &Router{current: domain.NormalizePath(initial), notice: notice}
}

// Enter moves to path without recording a navigation command.
func (r *Router) Enter(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = domain.NormalizePath(path)
}

func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Navigate(ctx context.Context, cmd domain.NavigationCommand) error {
	target := domain.NormalizePath(cmd.Path)

	r.mu.Lock()
	r.current = target
	r.history = append(r.history, domain.NavigationCommand{Path: target, Reason: cmd.Reason})
	notice := r.notice
	r.mu.Unlock()

	pslog.Ctx(ctx).Info("navigate", "path", target, "reason", string(cmd.Reason))
	if notice == nil {
		return nil
	}
	if _, err := fmt.Fprintln(notice, redirectNotice(target, cmd.Reason)); err != nil {
		return fmt.Errorf("write navigation notice: %w", err)
	}
	return nil
}

func (r *Router) History() []domain.NavigationCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.NavigationCommand, len(r.history))
	copy(out, r.history)
	return out
}

func redirectNotice(target string, reason domain.TeardownReason) string {
	switch reason {
	case domain.TeardownBlocked:
		return fmt.Sprintf("Your account is inactive or blocked. Redirected to %s.", target)
	case domain.TeardownExpired:
		return fmt.Sprintf("Your session has expired. Please sign in again (%s).", target)
	case domain.TeardownLogout:
		return fmt.Sprintf("Signed out. Redirected to %s.", target)
	default:
		return fmt.Sprintf("Redirected to %s.", target)
	}
}
