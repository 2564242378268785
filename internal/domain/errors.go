package domain

import "errors"

var (
	ErrNetworkFailure = errors.New("network failure")
	ErrExpiredSession = errors.New("session expired")
	ErrBlockedAccount = errors.New("account blocked")
	ErrForbidden      = errors.New("forbidden")
	ErrServerError    = errors.New("server error")
	ErrChannelNotOpen = errors.New("channel not open")

	ErrNoSession          = errors.New("no active session")
	ErrNoResource         = errors.New("resource id is required")
	ErrChannelClosed      = errors.New("channel closed")
	ErrRoleNotAllowed     = errors.New("role not allowed")
	ErrSnapshotNotFound   = errors.New("session snapshot not found")
	ErrCredentialNotFound = errors.New("credential not found")
)
