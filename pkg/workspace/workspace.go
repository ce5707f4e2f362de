// Package workspace tracks editing sessions across CLI invocations.
//
// Every command that opens a scene file records a session entry, so
// `matterframe recent` can list what was worked on and reopen it without
// retyping paths. Entries live as JSON files in a config directory and
// expire after a retention window.
package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its retention window.
	ErrExpired = errors.New("expired")
)

// Session records one scene file being edited.
type Session struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	ObjectCount int       `json:"object_count"`
	OpenedAt    time.Time `json:"opened_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has passed its retention window.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch refreshes the session's activity timestamps.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns all live sessions, most recently updated first.
	List(ctx context.Context) ([]*Session, error)

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session retention window.
const DefaultTTL = 30 * 24 * time.Hour

// New creates a session for the given scene file.
func New(path string, objectCount int, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Path:        path,
		ObjectCount: objectCount,
		OpenedAt:    now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}
