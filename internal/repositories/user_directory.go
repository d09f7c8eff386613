package repositories

import (
	"context"
	"errors"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password. The two cases are deliberately indistinguishable so callers
// cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("directory: invalid credentials")

// ErrUserNotFound signals a lookup miss for non-authentication reads.
var ErrUserNotFound = errors.New("directory: user not found")

// UserDirectory is the source of truth for who can log in. The demo build
// uses a static in-memory table; production plugs in the Casdoor-backed
// implementation without touching the auth or gate logic.
type UserDirectory interface {
	// Lookup finds a user by email.
	Lookup(ctx context.Context, email string) (*models.User, error)

	// Authenticate verifies the credentials for an email and returns the
	// user record on success. Unknown email and wrong password both return
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// GetByID finds a user by stable ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// List and search operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, email string, role models.UserRole) (bool, error)
}
