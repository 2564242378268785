package domain

import "time"

type Message struct {
	ID         string
	ResourceID string
	SenderID   string
	SenderName string
	Text       string
	SentAt     time.Time
}

// MessageLog keeps messages in arrival order with unique ids. It is not safe
// for concurrent use.
type MessageLog struct {
	order []Message
	seen  map[string]struct{}
}

func NewMessageLog() *MessageLog {
	return &MessageLog{seen: map[string]struct{}{}}
}

// Append adds m unless a message with the same id is already present. It
// reports whether the message was appended.
func (l *MessageLog) Append(m Message) bool {
	if l.seen == nil {
		l.seen = map[string]struct{}{}
	}
	if _, ok := l.seen[m.ID]; ok {
		return false
	}
	l.seen[m.ID] = struct{}{}
	l.order = append(l.order, m)
	return true
}

func (l *MessageLog) Contains(id string) bool {
	_, ok := l.seen[id]
	return ok
}

func (l *MessageLog) Len() int {
	return len(l.order)
}

func (l *MessageLog) Messages() []Message {
	out := make([]Message, len(l.order))
	copy(out, l.order)
	return out
}
