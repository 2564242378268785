package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLogDropsDuplicateIDs(t *testing.T) {
	t.Parallel()

	log := NewMessageLog()
	require.True(t, log.Append(Message{ID: "1", Text: "first"}))
	require.True(t, log.Append(Message{ID: "2", Text: "second"}))
	assert.False(t, log.Append(Message{ID: "1", Text: "replayed"}))
	require.True(t, log.Append(Message{ID: "3", Text: "third"}))

	messages := log.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{messages[0].Text, messages[1].Text, messages[2].Text})
	assert.True(t, log.Contains("2"))
	assert.False(t, log.Contains("4"))
}

func TestMessageLogMessagesReturnsCopy(t *testing.T) {
	t.Parallel()

	log := NewMessageLog()
	log.Append(Message{ID: "1", Text: "hello"})

	messages := log.Messages()
	messages[0].Text = "mutated"

	assert.Equal(t, "hello", log.Messages()[0].Text)
}

func TestMessageLogZeroValueIsUsable(t *testing.T) {
	t.Parallel()

	var log MessageLog
	assert.True(t, log.Append(Message{ID: "a"}))
	assert.False(t, log.Append(Message{ID: "a"}))
	assert.Equal(t, 1, log.Len())
}

func TestChannelStateTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from ChannelState
		to   ChannelState
		want bool
	}{
		{from: ChannelIdle, to: ChannelConnecting, want: true},
		{from: ChannelIdle, to: ChannelOpen, want: false},
		{from: ChannelConnecting, to: ChannelOpen, want: true},
		{from: ChannelConnecting, to: ChannelClosed, want: true},
		{from: ChannelOpen, to: ChannelClosing, want: true},
		{from: ChannelOpen, to: ChannelClosed, want: true},
		{from: ChannelOpen, to: ChannelConnecting, want: false},
		{from: ChannelClosing, to: ChannelClosed, want: true},
		{from: ChannelClosing, to: ChannelConnecting, want: false},
		{from: ChannelClosed, to: ChannelConnecting, want: true},
		{from: ChannelClosed, to: ChannelOpen, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestChannelStateTransitionError(t *testing.T) {
	t.Parallel()

	next, err := ChannelClosing.Transition(ChannelOpen)
	require.Error(t, err)
	assert.Equal(t, ChannelClosing, next)
	assert.ErrorContains(t, err, "closing -> open")

	next, err = ChannelClosed.Transition(ChannelConnecting)
	require.NoError(t, err)
	assert.Equal(t, ChannelConnecting, next)
	assert.Equal(t, "ChannelState(42)", ChannelState(42).String())
}
