package cookies

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"pkt.systems/pslog"
)

const (
	DefaultAccessCookie  = "access_token"
	DefaultRefreshCookie = "refresh_token"

	vaultNamespace = "pitchside"
)

type Options struct {
	// BaseURL is the API origin the session cookies belong to.
	BaseURL       string
	AccessCookie  string
	RefreshCookie string
	Vault         ports.SecretStore
}

// Jar is the http.CookieJar shared by the REST gateway and the realtime
// dialer. Both read cookies at request time, so a refresh that rotates the
// access cookie is picked up by the next call or reconnect.
type Jar struct {
	base          *url.URL
	accessCookie  string
	refreshCookie string
	vault         ports.SecretStore

	mu  sync.Mutex
	jar *cookiejar.Jar
}

var (
	_ http.CookieJar      = (*Jar)(nil)
	_ ports.CredentialJar = (*Jar)(nil)
)

func NewJar(opts Options) (*Jar, error) {
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse cookie origin: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("cookie origin %q must be absolute", opts.BaseURL)
	}

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	access := strings.TrimSpace(opts.AccessCookie)
	if access == "" {
		access = DefaultAccessCookie
	}
	refresh := strings.TrimSpace(opts.RefreshCookie)
	if refresh == "" {
		refresh = DefaultRefreshCookie
	}

	return &Jar{
		base:          &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"},
		accessCookie:  access,
		refreshCookie: refresh,
		vault:         opts.Vault,
		jar:           inner,
	}, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Persist copies the session cookies currently held by the jar into the
// vault. A cookie the server has dropped is removed from the vault as well.
func (j *Jar) Persist(ctx context.Context) error {
	if j.vault == nil {
		return nil
	}

	current := j.sessionCookies()
	var errs []error
	for _, name := range j.names() {
		key := j.vaultKey(name)
		value, ok := current[name]
		if ok {
			if err := j.vault.Put(ctx, key, value); err != nil {
				errs = append(errs, fmt.Errorf("store cookie %s: %w", name, err))
			}
			continue
		}
		if err := j.vault.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("drop cookie %s: %w", name, err))
		}
	}

	if len(errs) == 0 {
		pslog.Ctx(ctx).Debug("session cookies persisted", "count", len(current))
	}
	return errors.Join(errs...)
}

// Restore loads the vault cookies into the jar. Missing cookies are skipped.
func (j *Jar) Restore(ctx context.Context) error {
	if j.vault == nil {
		return nil
	}

	var restored []*http.Cookie
	var errs []error
	for _, name := range j.names() {
		value, err := j.vault.Get(ctx, j.vaultKey(name))
		if err != nil {
			if errors.Is(err, domain.ErrCredentialNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("load cookie %s: %w", name, err))
			continue
		}
		if value == "" {
			continue
		}
		restored = append(restored, &http.Cookie{Name: name, Value: value, Path: "/"})
	}

	if len(restored) > 0 {
		j.SetCookies(j.base, restored)
	}
	pslog.Ctx(ctx).Debug("session cookies restored", "count", len(restored))
	return errors.Join(errs...)
}

// Expire removes the access and refresh cookies from the jar and the vault.
func (j *Jar) Expire(ctx context.Context) error {
	expired := make([]*http.Cookie, 0, 2)
	for _, name := range j.names() {
		expired = append(expired, &http.Cookie{Name: name, Path: "/", MaxAge: -1, Expires: time.Unix(0, 0)})
	}
	j.SetCookies(j.base, expired)

	if j.vault == nil {
		return nil
	}

	var errs []error
	for _, name := range j.names() {
		if err := j.vault.Delete(ctx, j.vaultKey(name)); err != nil {
			errs = append(errs, fmt.Errorf("delete cookie %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (j *Jar) AccessToken() string {
	return j.sessionCookies()[j.accessCookie]
}

func (j *Jar) HasRefreshToken() bool {
	_, ok := j.sessionCookies()[j.refreshCookie]
	return ok
}

// AccessClaims are the unverified claims carried by the access cookie. The
// backend remains the authority; these are only used for display.
type AccessClaims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c AccessClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

func (j *Jar) AccessClaims() (AccessClaims, error) {
	token := j.AccessToken()
	if token == "" {
		return AccessClaims{}, domain.ErrCredentialNotFound
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return AccessClaims{}, fmt.Errorf("parse access token: %w", err)
	}

	out := AccessClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (j *Jar) sessionCookies() map[string]string {
	out := map[string]string{}
	for _, cookie := range j.Cookies(j.base) {
		if cookie.Name == j.accessCookie || cookie.Name == j.refreshCookie {
			out[cookie.Name] = cookie.Value
		}
	}
	return out
}

func (j *Jar) names() []string {
	return []string{j.accessCookie, j.refreshCookie}
}

func (j *Jar) vaultKey(name string) string {
	host := strings.NewReplacer(":", "_", "/", "_").Replace(j.base.Host)
	return vaultNamespace + "/" + host + "/" + name
}
