package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	EnvPrefix      = "PITCHSIDE"
	HomeEnv        = "PITCHSIDE_HOME"
	ConfigFileName = "config.toml"

	homeDirName = ".pitchside"
)

// Config is the resolved client configuration.
type Config struct {
	Home        string            `mapstructure:"-"`
	File        string            `mapstructure:"-"`
	API         APIConfig         `mapstructure:"api"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Gateway     GatewayConfig     `mapstructure:"gateway"`
	Chat        ChatConfig        `mapstructure:"chat"`
	Session     SessionConfig     `mapstructure:"session"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	WSURL   string        `mapstructure:"ws_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	RefreshPath   string `mapstructure:"refresh_path"`
	SignInPath    string `mapstructure:"signin_path"`
	SignUpPath    string `mapstructure:"signup_path"`
	LogoutPath    string `mapstructure:"logout_path"`
	MePath        string `mapstructure:"me_path"`
	AccessCookie  string `mapstructure:"access_cookie"`
	RefreshCookie string `mapstructure:"refresh_cookie"`
}

// GatewayConfig lists extra path patterns. Empty lists keep the gateway
// defaults.
type GatewayConfig struct {
	PublicEndpoints []string `mapstructure:"public_endpoints"`
	PublicViews     []string `mapstructure:"public_views"`
}

type ChatConfig struct {
	Path           string        `mapstructure:"path"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	// MaxAttempts of 0 keeps reconnecting forever.
	MaxAttempts int `mapstructure:"max_attempts"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type CredentialsConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// HomeDir returns PITCHSIDE_HOME or ~/.pitchside.
func HomeDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Clean(home), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(userHome, homeDirName), nil
}

// Default returns the configuration used when nothing is overridden.
func Default(home string) Config {
	return Config{
		Home: home,
		File: filepath.Join(home, ConfigFileName),
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			RefreshPath:   "/auth/refresh",
			SignInPath:    "/auth/signin",
			SignUpPath:    "/auth/signup",
			LogoutPath:    "/auth/logout",
			MePath:        "/auth/me",
			AccessCookie:  "access_token",
			RefreshCookie: "refresh_token",
		},
		Chat: ChatConfig{
			Path:           "/ws/chat/{id}/",
			ReconnectDelay: 3 * time.Second,
		},
		Session: SessionConfig{
			Path: filepath.Join(home, "session.toml"),
		},
		Credentials: CredentialsConfig{
			Backend: "chain",
			Dir:     filepath.Join(home, "credentials"),
		},
	}
}
