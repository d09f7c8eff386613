// Package session implements the persisted session slot: one serialized User
// per token, readable on every protected request, cleared on logout.
package session

import (
	"context"
	"errors"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

// ErrNoSession is the normal "not logged in" state: unknown token, expired
// entry, and malformed stored data all collapse into it. It is not a failure.
var ErrNoSession = errors.New("session: no session")

// Store persists at most one User per session token.
type Store interface {
	// Get returns the user for the token, or ErrNoSession. Malformed stored
	// data must be treated as ErrNoSession, never as a panic or a decode
	// error surfaced to the caller.
	Get(ctx context.Context, token string) (*models.User, error)

	// Set writes the user under the token, replacing any previous value.
	Set(ctx context.Context, token string, user *models.User) error

	// Clear removes the token's session. Clearing an absent token is a no-op.
	Clear(ctx context.Context, token string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
