package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Load resolves the configuration from defaults, the TOML config file and
// PITCHSIDE_* environment variables, in increasing precedence. A config file
// already set on v is used instead of the one under the home directory.
// Defaults are registered on v so other readers of v see the same values.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	home, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Default(home)

	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigFile(cfg.File)
	}
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Home = home
	cfg.File = v.ConfigFileUsed()

	if strings.TrimSpace(cfg.API.WSURL) == "" {
		derived, err := DeriveWSURL(cfg.API.BaseURL)
		if err != nil {
			return Config{}, fmt.Errorf("api.base_url: %w", err)
		}
		cfg.API.WSURL = derived
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.ws_url", cfg.API.WSURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("auth.refresh_path", cfg.Auth.RefreshPath)
	v.SetDefault("auth.signin_path", cfg.Auth.SignInPath)
	v.SetDefault("auth.signup_path", cfg.Auth.SignUpPath)
	v.SetDefault("auth.logout_path", cfg.Auth.LogoutPath)
	v.SetDefault("auth.me_path", cfg.Auth.MePath)
	v.SetDefault("auth.access_cookie", cfg.Auth.AccessCookie)
	v.SetDefault("auth.refresh_cookie", cfg.Auth.RefreshCookie)
	v.SetDefault("gateway.public_endpoints", []string{})
	v.SetDefault("gateway.public_views", []string{})
	v.SetDefault("chat.path", cfg.Chat.Path)
	v.SetDefault("chat.reconnect_delay", cfg.Chat.ReconnectDelay)
	v.SetDefault("chat.max_attempts", cfg.Chat.MaxAttempts)
	v.SetDefault("session.path", cfg.Session.Path)
	v.SetDefault("credentials.backend", cfg.Credentials.Backend)
	v.SetDefault("credentials.dir", cfg.Credentials.Dir)
}

// DeriveWSURL maps an http(s) API URL onto the websocket origin of the same
// host: http becomes ws, https becomes wss, and the path is dropped.
func DeriveWSURL(apiURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(apiURL))
	if err != nil {
		return "", err
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	return (&url.URL{Scheme: parsed.Scheme, Host: parsed.Host}).String(), nil
}

func (c Config) Validate() error {
	if err := validateURL("api.base_url", c.API.BaseURL, "http", "https"); err != nil {
		return err
	}
	if err := validateURL("api.ws_url", c.API.WSURL, "ws", "wss"); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	paths := []struct {
		key   string
		value string
	}{
		{"auth.refresh_path", c.Auth.RefreshPath},
		{"auth.signin_path", c.Auth.SignInPath},
		{"auth.signup_path", c.Auth.SignUpPath},
		{"auth.logout_path", c.Auth.LogoutPath},
		{"auth.me_path", c.Auth.MePath},
		{"chat.path", c.Chat.Path},
	}
	for _, p := range paths {
		if !strings.HasPrefix(strings.TrimSpace(p.value), "/") {
			return fmt.Errorf("%s must be an absolute path, got %q", p.key, p.value)
		}
	}
	if !strings.Contains(c.Chat.Path, "{id}") {
		return fmt.Errorf("chat.path must contain the {id} placeholder")
	}

	if strings.TrimSpace(c.Auth.AccessCookie) == "" {
		return fmt.Errorf("auth.access_cookie is required")
	}
	if strings.TrimSpace(c.Auth.RefreshCookie) == "" {
		return fmt.Errorf("auth.refresh_cookie is required")
	}
	if c.Chat.ReconnectDelay <= 0 {
		return fmt.Errorf("chat.reconnect_delay must be positive")
	}
	if c.Chat.MaxAttempts < 0 {
		return fmt.Errorf("chat.max_attempts must not be negative")
	}
	if strings.TrimSpace(c.Session.Path) == "" {
		return fmt.Errorf("session.path is required")
	}

	switch c.Credentials.Backend {
	case "chain", "file", "pass":
	default:
		return fmt.Errorf("unsupported credentials.backend %q", c.Credentials.Backend)
	}
	if c.Credentials.Backend != "pass" && strings.TrimSpace(c.Credentials.Dir) == "" {
		return fmt.Errorf("credentials.dir is required for the %s backend", c.Credentials.Backend)
	}
	return nil
}

func validateURL(key, raw string, schemes ...string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s must include scheme and host, got %q", key, raw)
	}
	for _, scheme := range schemes {
		if parsed.Scheme == scheme {
			return nil
		}
	}
	return fmt.Errorf("%s must use %s, got %q", key, strings.Join(schemes, " or "), parsed.Scheme)
}
