package realtime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/gorilla/websocket"
	"pkt.systems/pslog"
)

const (
	DefaultPathTemplate   = "/ws/chat/{id}/"
	DefaultReconnectDelay = 3 * time.Second

	handshakeTimeout = 10 * time.Second
	idPlaceholder    = "{id}"
)

// Dialer is satisfied by *websocket.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// SessionSource exposes the session the channel authenticates with.
type SessionSource interface {
	Current() domain.Session
}

// Refresher renews the session cookies. The chat calls it when a handshake
// is refused with 401 or 403 before dialling again.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Listener receives channel events in order from one goroutine per channel.
type Listener interface {
	OnMessage(domain.Message)
	OnStateChange(domain.ChannelState)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Message func(domain.Message)
	State   func(domain.ChannelState)
}

func (f ListenerFuncs) OnMessage(m domain.Message) {
	if f.Message != nil {
		f.Message(m)
	}
}

func (f ListenerFuncs) OnStateChange(s domain.ChannelState) {
	if f.State != nil {
		f.State(s)
	}
}

type Options struct {
	// BaseURL is the ws:// or wss:// origin of the realtime endpoint.
	BaseURL      string
	PathTemplate string
	// Origin is sent on the handshake; backends that validate origins
	// reject sockets without it.
	Origin string
	// Jar supplies the session cookies. It is consulted on every dial.
	Jar    http.CookieJar
	Dialer Dialer

	// Session is checked on open and before every redial; a channel whose
	// session is gone closes for good.
	Session   SessionSource
	Refresher Refresher

	ReconnectDelay time.Duration
	// MaxAttempts caps consecutive reconnect attempts; zero keeps retrying
	// until the channel is closed.
	MaxAttempts int
}

type Client struct {
	base         *url.URL
	pathTemplate string
	origin       string
	dialer       Dialer
	session      SessionSource
	refresher    Refresher
	delay        time.Duration
	maxAttempts  int
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse realtime base url: %w", err)
	}
	if base.Scheme != "ws" && base.Scheme != "wss" {
		return nil, fmt.Errorf("realtime base url %q must use ws or wss", opts.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("realtime base url %q has no host", opts.BaseURL)
	}

	template := strings.TrimSpace(opts.PathTemplate)
	if template == "" {
		template = DefaultPathTemplate
	}
	if !strings.Contains(template, idPlaceholder) {
		return nil, fmt.Errorf("realtime path template %q has no %s placeholder", template, idPlaceholder)
	}

	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("max reconnect attempts must not be negative, got %d", opts.MaxAttempts)
	}

	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}

	dialer := opts.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
			Jar:              opts.Jar,
		}
	}

	return &Client{
		base:         base,
		pathTemplate: template,
		origin:       strings.TrimSpace(opts.Origin),
		dialer:       dialer,
		session:      opts.Session,
		refresher:    opts.Refresher,
		delay:        delay,
		maxAttempts:  opts.MaxAttempts,
	}, nil
}

// Open starts a channel for resourceID. Nothing is dialled when the id is
// empty or no session is present. Cancelling ctx closes the channel.
func (c *Client) Open(ctx context.Context, resourceID string, listener Listener) (*Channel, error) {
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return nil, domain.ErrNoResource
	}
	if c.session == nil || !c.session.Current().Present() {
		return nil, domain.ErrNoSession
	}

	header := http.Header{}
	if c.origin != "" {
		header.Set("Origin", c.origin)
	}

	logger := pslog.Ctx(ctx).With("resource", resourceID)
	ch := newChannel(ctx, channelConfig{
		resourceID:  resourceID,
		url:         c.resourceURL(resourceID),
		header:      header,
		dialer:      c.dialer,
		delay:       c.delay,
		maxAttempts: c.maxAttempts,
		session:     c.session,
		refresher:   c.refresher,
		listener:    listener,
		logger:      logger,
	})
	ch.start()
	return ch, nil
}

func (c *Client) resourceURL(resourceID string) string {
	target := *c.base
	target.Path = strings.TrimRight(c.base.Path, "/") + strings.ReplaceAll(c.pathTemplate, idPlaceholder, url.PathEscape(resourceID))
	return target.String()
}
