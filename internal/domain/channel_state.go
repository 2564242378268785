package domain

import "fmt"

type ChannelState int

const (
	ChannelIdle ChannelState = iota
	ChannelConnecting
	ChannelOpen
	ChannelClosing
	ChannelClosed
)

var channelTransitions = map[ChannelState][]ChannelState{
	ChannelIdle:       {ChannelConnecting, ChannelClosing},
	ChannelConnecting: {ChannelOpen, ChannelClosed, ChannelClosing},
	ChannelOpen:       {ChannelClosing, ChannelClosed},
	ChannelClosing:    {ChannelClosed},
	ChannelClosed:     {ChannelConnecting, ChannelClosing},
}

func (s ChannelState) String() string {
	switch s {
	case ChannelIdle:
		return "idle"
	case ChannelConnecting:
		return "connecting"
	case ChannelOpen:
		return "open"
	case ChannelClosing:
		return "closing"
	case ChannelClosed:
		return "closed"
	default:
		return fmt.Sprintf("ChannelState(%d)", int(s))
	}
}

func (s ChannelState) CanTransitionTo(next ChannelState) bool {
	for _, allowed := range channelTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next when the move is allowed.
func (s ChannelState) Transition(next ChannelState) (ChannelState, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("invalid channel transition %s -> %s", s, next)
	}
	return next, nil
}
