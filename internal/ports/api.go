package ports

import "context"

// API is the authenticated REST surface of the backend. in and out are JSON
// encoded; either may be nil.
type API interface {
	JSON(ctx context.Context, method, path string, in any, out any) error
}
