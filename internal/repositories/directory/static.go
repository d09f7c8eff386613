// Package directory provides the UserDirectory implementations: the static
// in-memory demo table and the Casdoor-backed production directory.
package directory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

// SeedUser describes one demo account for the static directory.
type SeedUser struct {
	User     models.User
	Password string
}

// DemoUsers returns the built-in demo accounts.
func DemoUsers() []SeedUser {
	return []SeedUser{
		{
			User: models.User{
				ID: "u-emma", Email: "emma@jungle.com",
				FirstName: "Emma", LastName: "Martin", FullName: "Emma Martin",
				Role: models.RoleEmployee,
			},
			Password: "jungle123",
		},
		{
			User: models.User{
				ID: "u-leo", Email: "leo@jungle.com",
				FirstName: "Léo", LastName: "Dubois", FullName: "Léo Dubois",
				Role: models.RoleEmployee,
			},
			Password: "jungle123",
		},
		{
			User: models.User{
				ID: "u-marc", Email: "marc@jungle.com",
				FirstName: "Marc", LastName: "Petit", FullName: "Marc Petit",
				Role: models.RoleManager,
			},
			Password: "jungle123",
		},
		{
			User: models.User{
				ID: "u-sarah", Email: "sarah@jungle.com",
				FirstName: "Sarah", LastName: "Bernard", FullName: "Sarah Bernard",
				Role: models.RoleHR,
			},
			Password: "jungle123",
		},
		{
			User: models.User{
				ID: "u-paul", Email: "paul@jungle.com",
				FirstName: "Paul", LastName: "Moreau", FullName: "Paul Moreau",
				Role: models.RoleOfficeManager,
			},
			Password: "jungle123",
		},
	}
}

type staticEntry struct {
	user models.User
	hash []byte
}

// StaticDirectory is the fixed demo directory. Credentials are bcrypt-hashed
// at construction; the table is never mutated afterwards.
type StaticDirectory struct {
	mu      sync.RWMutex
	byEmail map[string]staticEntry
	byID    map[string]string // id -> email

	// Compared against for unknown emails so both failure paths pay the
	// same bcrypt cost.
	dummyHash []byte
}

func NewStaticDirectory(seeds []SeedUser) *StaticDirectory {
	d := &StaticDirectory{
		byEmail: make(map[string]staticEntry, len(seeds)),
		byID:    make(map[string]string, len(seeds)),
	}

	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		email := normalizeEmail(seed.User.Email)
		d.byEmail[email] = staticEntry{user: seed.User, hash: hash}
		d.byID[seed.User.ID] = email
	}

	d.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("pulse-dummy-credential"), bcrypt.DefaultCost)

	return d
}

func (d *StaticDirectory) Lookup(_ context.Context, email string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, ok := d.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	user := entry.user
	return &user, nil
}

func (d *StaticDirectory) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	d.mu.RLock()
	entry, ok := d.byEmail[normalizeEmail(email)]
	d.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(d.dummyHash, []byte(password))
		return nil, repositories.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return nil, repositories.ErrInvalidCredentials
	}

	user := entry.user
	return &user, nil
}

func (d *StaticDirectory) GetByID(_ context.Context, id string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	email, ok := d.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	user := d.byEmail[email].user
	return &user, nil
}

func (d *StaticDirectory) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var users []*models.User
	for _, entry := range d.byEmail {
		if filters.Role != nil && entry.user.Role != *filters.Role {
			continue
		}
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(entry.user.Email), q) &&
				!strings.Contains(strings.ToLower(entry.user.FullName), q) {
				continue
			}
		}
		user := entry.user
		users = append(users, &user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })

	total := int64(len(users))
	users = paginate(users, filters.Limit, filters.Offset)

	return users, total, nil
}

func (d *StaticDirectory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := d.Lookup(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (d *StaticDirectory) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := d.Lookup(ctx, email)
	if err != nil {
		return false, nil
	}
	return user.Role == role, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func paginate(users []*models.User, limit, offset int) []*models.User {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(users) {
		return nil
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users
}
