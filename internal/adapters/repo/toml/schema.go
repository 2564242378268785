package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Session *sessionSchema `toml:"session,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Authenticated bool        `toml:"authenticated"`
	View          string      `toml:"view,omitempty"`
	SavedAt       string      `toml:"saved_at,omitempty"`
	User          *userSchema `toml:"user,omitempty"`
}

type userSchema struct {
	ID       string `toml:"id"`
	Username string `toml:"username,omitempty"`
	Email    string `toml:"email,omitempty"`
	FullName string `toml:"full_name,omitempty"`
	Role     string `toml:"role,omitempty"`
}
