package realtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
)

type inboundFrame struct {
	ID        json.RawMessage `json:"id"`
	Message   string          `json:"message"`
	Sender    *frameUser      `json:"sender"`
	User      *frameUser      `json:"user"`
	Username  string          `json:"username"`
	CreatedAt string          `json:"created_at"`
	Timestamp string          `json:"timestamp"`
}

type frameUser struct {
	ID       json.RawMessage `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
}

type outboundFrame struct {
	Message string `json:"message"`
}

// decodeFrame turns one inbound text frame into a chat message. Frames
// without an id cannot be deduplicated and are rejected.
func decodeFrame(resourceID string, data []byte) (domain.Message, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return domain.Message{}, fmt.Errorf("decode chat frame: %w", err)
	}

	id := rawID(frame.ID)
	if id == "" {
		return domain.Message{}, fmt.Errorf("chat frame has no id")
	}

	msg := domain.Message{
		ID:         id,
		ResourceID: resourceID,
		Text:       frame.Message,
		SenderName: frame.Username,
	}

	sender := frame.Sender
	if sender == nil {
		sender = frame.User
	}
	if sender != nil {
		msg.SenderID = rawID(sender.ID)
		if name := strings.TrimSpace(sender.FullName); name != "" {
			msg.SenderName = name
		} else if sender.Username != "" {
			msg.SenderName = sender.Username
		}
	}

	for _, raw := range []string{frame.CreatedAt, frame.Timestamp} {
		if sentAt, ok := parseTimestamp(raw); ok {
			msg.SentAt = sentAt
			break
		}
	}

	return msg, nil
}

// rawID accepts ids encoded as JSON strings or numbers.
func rawID(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		return number.String()
	}
	return ""
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
