package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/pitchside/internal/domain"
	"github.com/bnema/pitchside/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionPathKey = "session.path"

	sessionFileMode  = 0o600
	sessionDirMode   = 0o700
	sessionConfigDir = ".pitchside"
	sessionFile      = "session.toml"
	tempFilePattern  = ".session-*.toml.tmp"
)

// Repository is the durable session snapshot kept in a single TOML file.
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	sessionPath := cfg.GetString(SessionPathKey)
	if sessionPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		sessionPath = filepath.Join(homeDir, sessionConfigDir, sessionFile)
	}

	sessionPath, err := normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionPath
}

// Load returns domain.ErrSnapshotNotFound when no session has been saved.
func (r *Repository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Snapshot{}, err
	}
	if file.Session == nil {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}

	return fromSchema(*file.Session), nil
}

func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	encoded := toSchema(snapshot)
	return r.writeSchema(fileSchema{Session: &encoded})
}

// Clear removes the snapshot file. Clearing an absent snapshot succeeds.
func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(snapshot domain.Snapshot) sessionSchema {
	encoded := sessionSchema{
		Authenticated: snapshot.Authenticated,
		View:          snapshot.View,
		SavedAt:       formatTime(snapshot.SavedAt),
	}
	if snapshot.User != nil {
		encoded.User = &userSchema{
			ID:       string(snapshot.User.ID),
			Username: snapshot.User.Username,
			Email:    snapshot.User.Email,
			FullName: snapshot.User.FullName,
			Role:     string(snapshot.User.Role),
		}
	}
	return encoded
}

// fromSchema drops the authenticated flag when no user was recorded, so a
// hand-edited file can never yield a session without a profile.
func fromSchema(session sessionSchema) domain.Snapshot {
	snapshot := domain.Snapshot{
		View:    session.View,
		SavedAt: parseTime(session.SavedAt),
	}
	if session.User == nil || session.User.ID == "" {
		return snapshot
	}

	snapshot.Authenticated = session.Authenticated
	snapshot.User = &domain.User{
		ID:       domain.UserID(session.User.ID),
		Username: session.User.Username,
		Email:    session.User.Email,
		FullName: session.User.FullName,
		Role:     domain.ParseRole(session.User.Role),
	}
	return snapshot
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
