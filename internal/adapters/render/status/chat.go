package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/pitchside/internal/domain"
)

// Transcript formats chat events one line at a time.
type Transcript struct {
	styles styles
	// Local renders timestamps in this location; nil keeps them as sent.
	Local *time.Location
}

func NewTranscript() Transcript {
	return Transcript{styles: newStyles()}
}

func (t Transcript) MessageLine(m domain.Message) string {
	sender := strings.TrimSpace(m.SenderName)
	if sender == "" {
		sender = strings.TrimSpace(m.SenderID)
	}
	if sender == "" {
		sender = "anonymous"
	}

	line := t.styles.sender.Render(sender) + " " + t.styles.detail.Render(m.Text)
	if m.SentAt.IsZero() {
		return line
	}
	sentAt := m.SentAt
	if t.Local != nil {
		sentAt = sentAt.In(t.Local)
	}
	return t.styles.stamp.Render("["+sentAt.Format("15:04:05")+"]") + " " + line
}

func (t Transcript) StateLine(resourceID string, state domain.ChannelState, attempts int) string {
	switch state {
	case domain.ChannelOpen:
		return t.styles.state.Render(fmt.Sprintf("-- connected to match %s chat", resourceID))
	case domain.ChannelConnecting:
		if attempts > 0 {
			return t.styles.state.Render(fmt.Sprintf("-- reconnecting (attempt %d)", attempts))
		}
		return t.styles.state.Render("-- connecting")
	case domain.ChannelClosed:
		return t.styles.stateBad.Render("-- disconnected")
	default:
		return t.styles.state.Render("-- " + state.String())
	}
}
