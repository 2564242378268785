package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bnema/pitchside/internal/adapters/realtime"
	statusadapter "github.com/bnema/pitchside/internal/adapters/render/status"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/spf13/cobra"
)

const defaultConnectTimeout = 30 * time.Second

func newChatCmd(app *app) *cobra.Command {
	var maxAttempts int
	var connectTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "chat MATCH_ID",
		Short: "Join a match chat",
		Long:  "chat follows the live chat of a match. Each line read from stdin is sent as a message; the chat keeps following after stdin ends until interrupted. Dropped connections are redialled with the current session cookies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := matchIDArg(args[0])
			if err != nil {
				return err
			}

			client := app.realtime
			if cmd.Flags().Changed("max-attempts") {
				if client, err = app.newRealtimeClient(maxAttempts); err != nil {
					return err
				}
			}
			app.router.Enter(matchLiveView(matchID))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			out := &syncWriter{w: cmd.OutOrStdout()}
			transcript := statusadapter.NewTranscript()
			ch, err := client.Open(ctx, matchID, chatListener(matchID, transcript, out))
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					return fmt.Errorf("chat needs a signed-in session, run pitchside login: %w", err)
				}
				return err
			}
			defer func() { _ = ch.Close() }()

			err = statusadapter.RunProgress(ctx, statusadapter.ProgressOptions{
				Label:  "Connecting to match chat...",
				Output: cmd.ErrOrStderr(),
				Input:  terminalInput(cmd),
				Detail: func() string {
					if n := ch.Attempts(); n > 0 {
						return fmt.Sprintf("retry %d", n)
					}
					return ""
				},
			}, func(ctx context.Context) error {
				waitCtx, cancelWait := context.WithTimeout(ctx, connectTimeout)
				defer cancelWait()
				return ch.WaitOpen(waitCtx)
			})
			if err != nil {
				return fmt.Errorf("connect to match %s chat: %w", matchID, err)
			}

			return pumpChat(ctx, cmd.InOrStdin(), ch, out)
		},
	}

	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many failed reconnects (0 keeps trying; default from chat.max_attempts)")
	cmd.Flags().DurationVar(&connectTimeout, "connect-timeout", defaultConnectTimeout, "How long to wait for the first connection")

	return cmd
}

// chatListener prints messages and, once the first connection is up, the
// connection changes. Callbacks arrive on one goroutine.
func chatListener(matchID string, transcript statusadapter.Transcript, out *syncWriter) realtime.Listener {
	opened := false
	reconnects := 0

	return realtime.ListenerFuncs{
		Message: func(m domain.Message) {
			out.println(transcript.MessageLine(m))
		},
		State: func(state domain.ChannelState) {
			switch state {
			case domain.ChannelOpen:
				opened = true
				reconnects = 0
			case domain.ChannelConnecting:
				if !opened {
					return
				}
				reconnects++
			case domain.ChannelClosing, domain.ChannelIdle:
				return
			case domain.ChannelClosed:
				if !opened {
					return
				}
			}
			out.println(transcript.StateLine(matchID, state, reconnects))
		},
	}
}

func pumpChat(ctx context.Context, in io.Reader, ch *realtime.Channel, out *syncWriter) error {
	lines := make(chan string)
	readDone := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readDone <- scanner.Err()
	}()

	finished := make(chan struct{})
	go func() {
		_ = ch.Wait(ctx)
		close(finished)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-finished:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("match %s chat: %w", ch.ResourceID(), domain.ErrChannelClosed)
		case err := <-readDone:
			if err != nil {
				return fmt.Errorf("read chat input: %w", err)
			}
			lines, readDone = nil, nil
		case line := <-lines:
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := ch.Send(line); err != nil {
				if !errors.Is(err, domain.ErrChannelNotOpen) {
					return err
				}
				out.println("-- not connected, message not sent")
			}
		}
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}
