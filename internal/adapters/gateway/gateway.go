package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"pkt.systems/pslog"
)

const (
	DefaultRefreshPath = "/auth/refresh"
	DefaultSignInPath  = "/auth/signin"
	DefaultSignUpPath  = "/auth/signup"
	DefaultLogoutPath  = "/auth/logout"

	maxResponseBytes = 4 << 20
	refreshKey       = "refresh"
	requestIDHeader  = "X-Request-ID"
)

// DefaultPublicViews are the views reachable without signing in. A failed
// background session check never bounces the user away from them.
var DefaultPublicViews = domain.PathSet{
	domain.HomePath,
	"/tournaments",
	"/tournaments/**",
	"/matches/*/live",
	domain.SignInPath,
	domain.SignUpPath,
}

type Options struct {
	BaseURL    string
	HTTPClient *http.Client

	RefreshPath string
	SignInPath  string
	SignUpPath  string
	LogoutPath  string
	// PublicEndpoints never trigger a refresh when they answer 401.
	PublicEndpoints domain.PathSet
	// PublicViews suppress teardown after a failed refresh.
	PublicViews domain.PathSet

	Navigator   ports.Navigator
	Teardown    ports.SessionTeardown
	Credentials ports.CredentialJar
}

// Gateway sends every REST call of the client. It recovers an expired access
// cookie with one shared refresh and tears the session down when the account
// is blocked or the refresh fails.
type Gateway struct {
	base        *url.URL
	client      *http.Client
	refreshPath string
	exempt      domain.PathSet
	publicViews domain.PathSet

	navigator   ports.Navigator
	teardown    ports.SessionTeardown
	credentials ports.CredentialJar

	refreshes  singleflight.Group
	inFlight   atomic.Bool
	generation atomic.Uint64
}

type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return errors.New("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func New(opts Options) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must use http or https", opts.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", opts.BaseURL)
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	refreshPath := pathOrDefault(opts.RefreshPath, DefaultRefreshPath)
	exempt := domain.PathSet{
		refreshPath,
		pathOrDefault(opts.SignInPath, DefaultSignInPath),
		pathOrDefault(opts.SignUpPath, DefaultSignUpPath),
		pathOrDefault(opts.LogoutPath, DefaultLogoutPath),
	}
	exempt = append(exempt, opts.PublicEndpoints...)

	publicViews := opts.PublicViews
	if publicViews == nil {
		publicViews = DefaultPublicViews
	}

	return &Gateway{
		base:        base,
		client:      client,
		refreshPath: refreshPath,
		exempt:      exempt,
		publicViews: publicViews,
		navigator:   opts.Navigator,
		teardown:    opts.Teardown,
		credentials: opts.Credentials,
	}, nil
}

// RefreshInFlight reports whether a refresh call is outstanding.
func (g *Gateway) RefreshInFlight() bool {
	return g.inFlight.Load()
}

func (g *Gateway) BaseURL() string {
	return g.base.String()
}

func (g *Gateway) Get(ctx context.Context, path string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

func (g *Gateway) Post(ctx context.Context, path string, body any) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (g *Gateway) Put(ctx context.Context, path string, body any) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (g *Gateway) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (g *Gateway) Delete(ctx context.Context, path string) (*Response, error) {
	return g.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// JSON sends in as the request body and decodes the answer into out. Either
// may be nil.
func (g *Gateway) JSON(ctx context.Context, method, path string, in any, out any) error {
	resp, err := g.Do(ctx, Request{Method: method, Path: path, Body: in})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	return resp.Decode(out)
}

// Do sends req and returns the 2xx response. Any other outcome is an error:
// a *StatusError for HTTP failures or an error wrapping
// domain.ErrNetworkFailure when no response arrived.
func (g *Gateway) Do(ctx context.Context, req Request) (*Response, error) {
	call, err := g.newPendingRequest(req)
	if err != nil {
		return nil, err
	}

	generation := g.generation.Load()
	resp, err := g.send(ctx, call)
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	statusErr := newStatusError(call.method, call.path, resp)
	if statusErr.Blocked() {
		g.escalate(ctx, domain.TeardownBlocked, statusErr)
		return nil, statusErr
	}
	if resp.StatusCode != http.StatusUnauthorized || call.retried || g.exempt.Match(call.path) {
		return nil, statusErr
	}

	call.retried = true
	if err := g.refresh(ctx, generation); err != nil {
		return nil, errors.Join(statusErr, err)
	}

	call.header.Del("Authorization")
	retry, err := g.send(ctx, call)
	if err != nil {
		return nil, err
	}
	if isSuccess(retry.StatusCode) {
		return retry, nil
	}

	retryErr := newStatusError(call.method, call.path, retry)
	if retryErr.Blocked() {
		g.escalate(ctx, domain.TeardownBlocked, retryErr)
	}
	return nil, retryErr
}

// pendingRequest is one REST exchange. retried is set before the single
// retry and never cleared.
type pendingRequest struct {
	method    string
	path      string
	target    string
	body      []byte
	header    http.Header
	requestID string
	retried   bool
}

func (g *Gateway) newPendingRequest(req Request) (*pendingRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	target, path, err := g.resolve(req.Path)
	if err != nil {
		return nil, err
	}

	var body []byte
	if req.Body != nil {
		switch typed := req.Body.(type) {
		case []byte:
			body = typed
		case json.RawMessage:
			body = typed
		default:
			body, err = json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
			}
		}
	}

	header := req.Header.Clone()
	if header == nil {
		header = http.Header{}
	}

	return &pendingRequest{
		method:    method,
		path:      path,
		target:    target,
		body:      body,
		header:    header,
		requestID: uuid.NewString(),
	}, nil
}

func (g *Gateway) resolve(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", errors.New("request path is empty")
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		return "", "", fmt.Errorf("parse request path %q: %w", raw, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", "", fmt.Errorf("request path %q must be relative to the api base url", raw)
	}
	if !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}

	target := *g.base
	target.Path = strings.TrimRight(g.base.Path, "/") + ref.Path
	target.RawQuery = ref.RawQuery
	return target.String(), ref.Path, nil
}

func (g *Gateway) send(ctx context.Context, call *pendingRequest) (*Response, error) {
	var body io.Reader
	if call.body != nil {
		body = bytes.NewReader(call.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, call.method, call.target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", call.method, call.path, err)
	}
	for key, values := range call.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, call.requestID)
	if call.body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", call.method, call.path, domain.ErrNetworkFailure, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w: %w", call.method, call.path, domain.ErrNetworkFailure, err)
	}

	pslog.Ctx(ctx).Debug("api call",
		"method", call.method,
		"path", call.path,
		"status", httpResp.StatusCode,
		"request_id", call.requestID,
		"retried", call.retried,
	)

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

// Refresh renews the session cookies outside of a REST call, sharing the
// outcome with any refresh already in flight. A rejected refresh escalates
// like one triggered by a 401.
func (g *Gateway) Refresh(ctx context.Context) error {
	return g.refresh(ctx, g.generation.Load())
}

// refresh waits for the shared refresh outcome. A caller whose request left
// before the latest successful refresh finished already has stale cookies
// replaced and skips straight to its retry.
func (g *Gateway) refresh(ctx context.Context, generation uint64) error {
	if g.generation.Load() != generation {
		return nil
	}

	ch := g.refreshes.DoChan(refreshKey, func() (any, error) {
		if g.generation.Load() != generation {
			return nil, nil
		}
		return nil, g.runRefresh(context.WithoutCancel(ctx))
	})

	select {
	case result := <-ch:
		return result.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) runRefresh(ctx context.Context) error {
	g.inFlight.Store(true)
	defer g.inFlight.Store(false)

	logger := pslog.Ctx(ctx)
	logger.Info("refreshing session")

	call := &pendingRequest{
		method:    http.MethodPost,
		path:      g.refreshPath,
		header:    http.Header{},
		requestID: uuid.NewString(),
	}
	target, _, err := g.resolve(g.refreshPath)
	if err != nil {
		return err
	}
	call.target = target

	// An unreachable backend says nothing about the session, so only a
	// rejected refresh ends it.
	resp, err := g.send(ctx, call)
	if err != nil {
		logger.Warn("session refresh failed", "err", err)
		return fmt.Errorf("refresh session: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		statusErr := newStatusError(call.method, call.path, resp)
		logger.Warn("session refresh rejected", "status", resp.StatusCode, "detail", statusErr.Detail)
		reason := domain.TeardownExpired
		if statusErr.Blocked() {
			reason = domain.TeardownBlocked
		}
		g.escalate(ctx, reason, statusErr)
		return fmt.Errorf("refresh session: %w", statusErr)
	}

	g.generation.Add(1)
	logger.Info("session refreshed")

	if g.credentials != nil {
		if err := g.credentials.Persist(ctx); err != nil {
			logger.Warn("persist refreshed cookies failed", "err", err)
		}
	}
	return nil
}

// escalate runs the teardown for reason. An expired session is left alone
// while the user is on a public view; a blocked account is always torn down.
func (g *Gateway) escalate(ctx context.Context, reason domain.TeardownReason, cause error) {
	if g.teardown == nil {
		return
	}

	logger := pslog.Ctx(ctx).With("reason", string(reason))
	if reason != domain.TeardownBlocked && g.onPublicView() {
		logger.Debug("session teardown suppressed on public view", "view", g.navigator.CurrentPath())
		return
	}

	logger.Warn("tearing down session", "cause", cause)
	if err := g.teardown.Teardown(context.WithoutCancel(ctx), reason); err != nil {
		logger.Error("session teardown failed", "err", err)
	}
}

func (g *Gateway) onPublicView() bool {
	if g.navigator == nil {
		return false
	}
	return g.publicViews.Match(g.navigator.CurrentPath())
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func pathOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
