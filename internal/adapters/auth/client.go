package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
)

const defaultRequestTimeout = 30 * time.Second

// API holds the backend paths of the session endpoints, relative to the
// gateway base URL.
type API struct {
	SignInPath string
	SignUpPath string
	LogoutPath string
	MePath     string
}

func DefaultAPI() API {
	return API{
		SignInPath: "/auth/signin",
		SignUpPath: "/auth/signup",
		LogoutPath: "/auth/logout",
		MePath:     "/auth/me",
	}
}

// Transport is the slice of the gateway the client needs.
type Transport interface {
	JSON(ctx context.Context, method, path string, in any, out any) error
}

// Client talks to the session endpoints through the gateway, so cookies set
// by sign-in land in the shared jar and /auth/me benefits from refresh.
type Client struct {
	API            API
	Transport      Transport
	RequestTimeout time.Duration
}

var _ ports.Authenticator = Client{}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (c Client) SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if err := creds.Validate(); err != nil {
		return domain.User{}, err
	}

	var payload userEnvelope
	if err := c.call(ctx, http.MethodPost, c.API.SignInPath, signInRequest{
		Email:    strings.TrimSpace(creds.Email),
		Password: creds.Password,
	}, &payload); err != nil {
		return domain.User{}, fmt.Errorf("sign in: %w", err)
	}

	user, err := payload.user()
	if err != nil {
		return domain.User{}, fmt.Errorf("sign in: %w", err)
	}
	return user, nil
}

// SignUp registers an account. The backend does not open a session for it.
func (c Client) SignUp(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if err := reg.Validate(); err != nil {
		return domain.User{}, err
	}

	var payload userEnvelope
	if err := c.call(ctx, http.MethodPost, c.API.SignUpPath, signUpRequest{
		Username: strings.TrimSpace(reg.Username),
		Email:    strings.TrimSpace(reg.Email),
		Password: reg.Password,
		FullName: strings.TrimSpace(reg.FullName),
		Role:     string(reg.Role),
	}, &payload); err != nil {
		return domain.User{}, fmt.Errorf("sign up: %w", err)
	}

	user, err := payload.user()
	if err != nil {
		// Some deployments answer sign-up with a bare confirmation.
		return domain.User{Username: reg.Username, Email: reg.Email, FullName: reg.FullName, Role: reg.Role}, nil
	}
	return user, nil
}

func (c Client) Logout(ctx context.Context) error {
	if err := c.call(ctx, http.MethodPost, c.API.LogoutPath, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c Client) Me(ctx context.Context) (domain.User, error) {
	var payload userEnvelope
	if err := c.call(ctx, http.MethodGet, c.API.MePath, nil, &payload); err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}

	user, err := payload.user()
	if err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

func (c Client) call(ctx context.Context, method, path string, in any, out any) error {
	if c.Transport == nil {
		return errors.New("auth transport is not configured")
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("api path is required")
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	return c.Transport.JSON(requestCtx, method, path, in, out)
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

// userEnvelope accepts the profile either nested under "user" or at the top
// level of the payload.
type userEnvelope struct {
	User *userPayload `json:"user"`
	userPayload
}

type userPayload struct {
	ID        json.RawMessage `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      string          `json:"role"`
}

func (e userEnvelope) user() (domain.User, error) {
	payload := e.userPayload
	if e.User != nil {
		payload = *e.User
	}

	id := decodeID(payload.ID)
	if id == "" {
		return domain.User{}, errors.New("profile response has no user id")
	}

	fullName := strings.TrimSpace(payload.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(payload.FirstName + " " + payload.LastName)
	}

	return domain.User{
		ID:       domain.UserID(id),
		Username: payload.Username,
		Email:    payload.Email,
		FullName: fullName,
		Role:     domain.ParseRole(payload.Role),
	}, nil
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	return ""
}
