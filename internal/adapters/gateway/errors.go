package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/pitchside/internal/domain"
)

const maxDetailLength = 300

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

// Unwrap maps the status onto the domain error taxonomy so callers can use
// errors.Is without knowing HTTP.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return domain.ErrExpiredSession
	case e.Blocked():
		return domain.ErrBlockedAccount
	case e.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case e.StatusCode >= http.StatusInternalServerError:
		return domain.ErrServerError
	default:
		return nil
	}
}

func (e *StatusError) Blocked() bool {
	return e.StatusCode == http.StatusForbidden && domain.IsBlockedDetail(e.Detail)
}

func newStatusError(method, path string, resp *Response) *StatusError {
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Detail:     extractDetail(resp.Body),
		Body:       resp.Body,
	}
}

// extractDetail reads the human readable reason from an error payload. The
// backend uses "detail"; "message" and "error" cover proxies in front of it.
func extractDetail(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if value, ok := payload[key]; ok {
				if detail := stringify(value); detail != "" {
					return detail
				}
			}
		}
		return ""
	}

	if len(trimmed) > maxDetailLength {
		trimmed = trimmed[:maxDetailLength]
	}
	return trimmed
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
