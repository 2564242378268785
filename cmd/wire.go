package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	authadapter "github.com/bnema/pitchside/internal/adapters/auth"
	"github.com/bnema/pitchside/internal/adapters/cookies"
	"github.com/bnema/pitchside/internal/adapters/gateway"
	"github.com/bnema/pitchside/internal/adapters/navigation"
	"github.com/bnema/pitchside/internal/adapters/realtime"
	statusadapter "github.com/bnema/pitchside/internal/adapters/render/status"
	tomlrepo "github.com/bnema/pitchside/internal/adapters/repo/toml"
	chainstore "github.com/bnema/pitchside/internal/adapters/secrets/chain"
	"github.com/bnema/pitchside/internal/application"
	"github.com/bnema/pitchside/internal/config"
	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config.Config
	state          *application.SessionState
	router         *navigation.Router
	jar            *cookies.Jar
	gateway        *gateway.Gateway
	sessions       *application.SessionService
	tournaments    *application.TournamentService
	realtime       *realtime.Client
	restored       application.SessionStatus
	statusRenderer func(application.SessionStatus, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

// wireApp builds the object graph and restores the session left by the
// previous run. Navigation notices go to notice.
func wireApp(ctx context.Context, v *viper.Viper, notice io.Writer) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	vault, err := chainstore.Open(cfg.Credentials.Backend, cfg.Credentials.Dir)
	if err != nil {
		return nil, fmt.Errorf("wire credential vault: %w", err)
	}

	jar, err := cookies.NewJar(cookies.Options{
		BaseURL:       cfg.API.BaseURL,
		AccessCookie:  cfg.Auth.AccessCookie,
		RefreshCookie: cfg.Auth.RefreshCookie,
		Vault:         vault,
	})
	if err != nil {
		return nil, fmt.Errorf("wire cookie jar: %w", err)
	}

	state := application.NewSessionState()
	router := navigation.NewRouter(domain.HomePath, notice)
	teardown := application.NewSessionTeardown(state, store, jar, router)

	gw, err := gateway.New(gateway.Options{
		BaseURL:         cfg.API.BaseURL,
		HTTPClient:      &http.Client{Jar: jar, Timeout: cfg.API.Timeout},
		RefreshPath:     cfg.Auth.RefreshPath,
		SignInPath:      cfg.Auth.SignInPath,
		SignUpPath:      cfg.Auth.SignUpPath,
		LogoutPath:      cfg.Auth.LogoutPath,
		PublicEndpoints: domain.PathSet(cfg.Gateway.PublicEndpoints),
		PublicViews:     publicViews(cfg.Gateway.PublicViews),
		Navigator:       router,
		Teardown:        teardown,
		Credentials:     jar,
	})
	if err != nil {
		return nil, fmt.Errorf("wire gateway: %w", err)
	}

	clock := ports.SystemClock{}
	sessions := application.NewSessionService(application.SessionDeps{
		State: state,
		Store: store,
		Auth: authadapter.Client{
			API: authadapter.API{
				SignInPath: cfg.Auth.SignInPath,
				SignUpPath: cfg.Auth.SignUpPath,
				LogoutPath: cfg.Auth.LogoutPath,
				MePath:     cfg.Auth.MePath,
			},
			Transport:      gw,
			RequestTimeout: cfg.API.Timeout,
		},
		Jar:       jar,
		Teardown:  teardown,
		Navigator: router,
		Clock:     clock,
	})

	a := &app{
		cfg:            cfg,
		state:          state,
		router:         router,
		jar:            jar,
		gateway:        gw,
		sessions:       sessions,
		tournaments:    application.NewTournamentService(gw, sessions, clock),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}

	rt, err := a.newRealtimeClient(cfg.Chat.MaxAttempts)
	if err != nil {
		return nil, err
	}
	a.realtime = rt

	restored, err := sessions.Restore(ctx)
	if err != nil {
		return nil, err
	}
	a.restored = restored

	return a, nil
}

func (a *app) newRealtimeClient(maxAttempts int) (*realtime.Client, error) {
	client, err := realtime.NewClient(realtime.Options{
		BaseURL:        a.cfg.API.WSURL,
		PathTemplate:   a.cfg.Chat.Path,
		Origin:         origin(a.cfg.API.BaseURL),
		Jar:            a.jar,
		Session:        a.state,
		Refresher:      a.gateway,
		ReconnectDelay: a.cfg.Chat.ReconnectDelay,
		MaxAttempts:    maxAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("wire realtime client: %w", err)
	}
	return client, nil
}

// publicViews extends the built-in public views with configured ones.
func publicViews(extra []string) domain.PathSet {
	if len(extra) == 0 {
		return nil
	}
	return append(slices.Clone(gateway.DefaultPublicViews), extra...)
}

func origin(apiURL string) string {
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
