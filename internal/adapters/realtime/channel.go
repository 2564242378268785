package realtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/gorilla/websocket"
	"pkt.systems/pslog"
)

const closeFrameTimeout = time.Second

type channelConfig struct {
	resourceID  string
	url         string
	header      http.Header
	dialer      Dialer
	delay       time.Duration
	maxAttempts int
	session     SessionSource
	refresher   Refresher
	listener    Listener
	logger      pslog.Logger
}

// Channel is one live chat connection for a resource. It redials after an
// unexpected drop until Close is called or its context ends. It also gives
// up when the attempt budget runs out, the session is gone, or the backend
// refuses to renew the credentials the handshake was rejected with.
type Channel struct {
	cfg    channelConfig
	ctx    context.Context
	cancel context.CancelFunc
	events *dispatcher

	mu        sync.Mutex
	state     domain.ChannelState
	conn      *websocket.Conn
	attempts  int
	cancelled bool
	finished  bool
	timer     *time.Timer
	log       domain.MessageLog
	changed   chan struct{}

	writeMu sync.Mutex
}

func newChannel(parent context.Context, cfg channelConfig) *Channel {
	ctx, cancel := context.WithCancel(parent)
	return &Channel{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		events:  newDispatcher(),
		state:   domain.ChannelIdle,
		changed: make(chan struct{}),
	}
}

func (ch *Channel) start() {
	go ch.events.run()
	go func() {
		<-ch.ctx.Done()
		_ = ch.Close()
	}()

	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.dialLocked()
}

func (ch *Channel) ResourceID() string {
	return ch.cfg.resourceID
}

func (ch *Channel) State() domain.ChannelState {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

// Attempts is the number of reconnects scheduled since the last open.
func (ch *Channel) Attempts() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.attempts
}

func (ch *Channel) Messages() []domain.Message {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.log.Messages()
}

// Done reports whether the channel is closed for good.
func (ch *Channel) Done() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.finished
}

// WaitOpen blocks until the channel is open. It returns
// domain.ErrChannelClosed once the channel will never open again.
func (ch *Channel) WaitOpen(ctx context.Context) error {
	for {
		ch.mu.Lock()
		state, finished, changed := ch.state, ch.finished, ch.changed
		ch.mu.Unlock()

		if state == domain.ChannelOpen {
			return nil
		}
		if finished {
			return domain.ErrChannelClosed
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Wait blocks until the channel is closed for good.
func (ch *Channel) Wait(ctx context.Context) error {
	for {
		ch.mu.Lock()
		finished, changed := ch.finished, ch.changed
		ch.mu.Unlock()

		if finished {
			return nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Send writes text to the open socket. It never queues: a channel that is
// not open fails with domain.ErrChannelNotOpen.
func (ch *Channel) Send(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("chat message is empty")
	}

	ch.mu.Lock()
	conn := ch.conn
	open := ch.state == domain.ChannelOpen
	ch.mu.Unlock()
	if !open || conn == nil {
		return domain.ErrChannelNotOpen
	}

	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	if err := conn.WriteJSON(outboundFrame{Message: text}); err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}
	return nil
}

// Close stops reconnecting, cancels a pending dial and closes the socket
// with a normal closure frame. It is safe to call more than once.
func (ch *Channel) Close() error {
	ch.mu.Lock()
	if ch.cancelled {
		ch.mu.Unlock()
		return nil
	}
	ch.cancelled = true
	if ch.timer != nil {
		ch.timer.Stop()
		ch.timer = nil
	}
	conn := ch.conn
	ch.conn = nil
	alreadyFinished := ch.finished
	if !alreadyFinished {
		ch.setStateLocked(domain.ChannelClosing)
	}
	ch.mu.Unlock()

	ch.cancel()

	var closeErr error
	if conn != nil {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeFrameTimeout),
		)
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			closeErr = fmt.Errorf("close chat socket: %w", err)
		}
	}

	if !alreadyFinished {
		ch.mu.Lock()
		ch.setStateLocked(domain.ChannelClosed)
		ch.finishLocked()
		ch.mu.Unlock()
		ch.cfg.logger.Info("chat channel closed")
	}
	return closeErr
}

func (ch *Channel) dialLocked() {
	ch.setStateLocked(domain.ChannelConnecting)
	go ch.dial()
}

func (ch *Channel) dial() {
	conn, resp, err := ch.cfg.dialer.DialContext(ch.ctx, ch.cfg.url, ch.cfg.header.Clone())
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	ch.mu.Lock()
	if ch.cancelled || ch.ctx.Err() != nil {
		ch.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
			err = fmt.Errorf("%w: status %d", err, status)
		}
		ch.mu.Unlock()
		ch.cfg.logger.Warn("chat dial failed", "err", err)

		var refreshErr error
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			refreshErr = ch.renewCredentials()
		}

		ch.mu.Lock()
		defer ch.mu.Unlock()
		if ch.cancelled || ch.ctx.Err() != nil {
			return
		}
		if refreshErr != nil {
			ch.cfg.logger.Warn("chat credentials cannot be renewed", "err", refreshErr)
			ch.giveUpLocked()
			return
		}
		ch.dropLocked()
		return
	}

	ch.conn = conn
	ch.attempts = 0
	ch.setStateLocked(domain.ChannelOpen)
	ch.mu.Unlock()

	ch.cfg.logger.Info("chat channel open")
	ch.readLoop(conn)
}

func (ch *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			ch.mu.Lock()
			if ch.conn == conn {
				ch.conn = nil
			}
			if !ch.cancelled && ch.ctx.Err() == nil {
				ch.cfg.logger.Warn("chat connection lost", "err", err)
				ch.dropLocked()
			}
			ch.mu.Unlock()
			return
		}

		msg, err := decodeFrame(ch.cfg.resourceID, data)
		if err != nil {
			ch.cfg.logger.Debug("chat frame dropped", "err", err)
			continue
		}

		ch.mu.Lock()
		if ch.log.Append(msg) && ch.cfg.listener != nil {
			listener := ch.cfg.listener
			ch.events.push(func() { listener.OnMessage(msg) })
		}
		ch.mu.Unlock()
	}
}

// renewCredentials asks the refresher for fresh session cookies after the
// handshake was refused. An unreachable backend is not a refusal, so the
// normal reconnect schedule keeps going.
func (ch *Channel) renewCredentials() error {
	if ch.cfg.refresher == nil {
		return nil
	}
	err := ch.cfg.refresher.Refresh(ch.ctx)
	if err == nil || errors.Is(err, domain.ErrNetworkFailure) || ch.ctx.Err() != nil {
		return nil
	}
	return err
}

func (ch *Channel) sessionPresent() bool {
	return ch.cfg.session == nil || ch.cfg.session.Current().Present()
}

// dropLocked handles any closure the caller did not ask for.
func (ch *Channel) dropLocked() {
	ch.setStateLocked(domain.ChannelClosed)

	if !ch.sessionPresent() {
		ch.cfg.logger.Info("chat session ended, not reconnecting")
		ch.giveUpLocked()
		return
	}
	if ch.cfg.maxAttempts > 0 && ch.attempts >= ch.cfg.maxAttempts {
		ch.cfg.logger.Warn("chat reconnect attempts exhausted", "attempts", ch.attempts)
		ch.giveUpLocked()
		return
	}

	ch.attempts++
	ch.cfg.logger.Info("chat reconnect scheduled", "attempt", ch.attempts, "delay", ch.cfg.delay.String())
	ch.timer = time.AfterFunc(ch.cfg.delay, ch.reconnect)
}

func (ch *Channel) reconnect() {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.timer = nil
	if ch.cancelled || ch.finished || ch.ctx.Err() != nil {
		return
	}
	if !ch.sessionPresent() {
		ch.cfg.logger.Info("chat session ended, not reconnecting")
		ch.giveUpLocked()
		return
	}
	ch.dialLocked()
}

// giveUpLocked closes the channel for good without a caller asking for it.
func (ch *Channel) giveUpLocked() {
	ch.setStateLocked(domain.ChannelClosed)
	ch.finishLocked()
	ch.cancel()
}

func (ch *Channel) setStateLocked(next domain.ChannelState) {
	if ch.state == next {
		return
	}
	updated, err := ch.state.Transition(next)
	if err != nil {
		ch.cfg.logger.Error("chat channel state", "err", err)
		return
	}

	ch.state = updated
	close(ch.changed)
	ch.changed = make(chan struct{})
	ch.cfg.logger.Debug("chat channel state", "state", updated.String())

	if ch.cfg.listener != nil {
		listener := ch.cfg.listener
		ch.events.push(func() { listener.OnStateChange(updated) })
	}
}

func (ch *Channel) finishLocked() {
	if ch.finished {
		return
	}
	ch.finished = true
	close(ch.changed)
	ch.changed = make(chan struct{})
	ch.events.stop()
}
