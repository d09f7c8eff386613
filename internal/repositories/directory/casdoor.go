package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

// CasdoorConfig holds the configuration for the Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// CasdoorDirectory is the production UserDirectory, backed by the company's
// Casdoor instance with a Redis read-through cache.
type CasdoorDirectory struct {
	client *casdoorsdk.Client
	redis  *redis.Client
	config CasdoorConfig

	cachePrefix string
	cacheTTL    time.Duration
}

func NewCasdoorDirectory(config CasdoorConfig, redisClient *redis.Client) repositories.UserDirectory {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &CasdoorDirectory{
		client:      client,
		redis:       redisClient,
		config:      config,
		cachePrefix: "user:",
		cacheTTL:    15 * time.Minute,
	}
}

// ===== CACHE METHODS =====

func (d *CasdoorDirectory) cacheKey(key string) string {
	return d.cachePrefix + key
}

func (d *CasdoorDirectory) getUserFromCache(ctx context.Context, key string) *models.User {
	if d.redis == nil {
		return nil
	}

	data, err := d.redis.Get(ctx, d.cacheKey(key)).Result()
	if err != nil {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil
	}
	return &user
}

func (d *CasdoorDirectory) setUserCache(ctx context.Context, key string, user *models.User) {
	if d.redis == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = d.redis.Set(ctx, d.cacheKey(key), data, d.cacheTTL).Err()
}

// ===== CONVERSION =====

func (d *CasdoorDirectory) convertCasdoorUserToModel(casdoorUser *casdoorsdk.User) *models.User {
	if casdoorUser == nil {
		return nil
	}

	var createdAt, updatedAt time.Time
	if casdoorUser.CreatedTime != "" {
		createdAt, _ = time.Parse(time.RFC3339, casdoorUser.CreatedTime)
	}
	if casdoorUser.UpdatedTime != "" {
		updatedAt, _ = time.Parse(time.RFC3339, casdoorUser.UpdatedTime)
	}

	return &models.User{
		ID:        casdoorUser.Id,
		Email:     casdoorUser.Email,
		FullName:  casdoorUser.DisplayName,
		FirstName: casdoorUser.FirstName,
		LastName:  casdoorUser.LastName,
		Role:      d.convertCasdoorRoles(casdoorUser),
		AvatarURL: &casdoorUser.Avatar,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func (d *CasdoorDirectory) convertCasdoorRoles(casdoorUser *casdoorsdk.User) models.UserRole {
	for _, casdoorRole := range casdoorUser.Roles {
		if role, ok := mapCasdoorRole(casdoorRole.Name); ok {
			return role
		}
	}
	if role, ok := mapCasdoorRole(casdoorUser.Type); ok {
		return role
	}
	return models.RoleEmployee // Default role
}

func mapCasdoorRole(name string) (models.UserRole, bool) {
	switch strings.ToLower(name) {
	case "employee", "staff":
		return models.RoleEmployee, true
	case "manager", "team_lead":
		return models.RoleManager, true
	case "hr", "rh", "human_resources":
		return models.RoleHR, true
	case "office_manager", "facilities":
		return models.RoleOfficeManager, true
	}
	return "", false
}

// ===== DIRECTORY OPERATIONS =====

func (d *CasdoorDirectory) Lookup(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)

	if cached := d.getUserFromCache(ctx, "email:"+email); cached != nil {
		return cached, nil
	}

	casdoorUser, err := d.client.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("directory: get user by email from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, repositories.ErrUserNotFound
	}

	user := d.convertCasdoorUserToModel(casdoorUser)
	d.setUserCache(ctx, "email:"+email, user)
	d.setUserCache(ctx, "id:"+user.ID, user)

	return user, nil
}

func (d *CasdoorDirectory) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	// Casdoor validates credentials via the resource-owner flow. Any
	// failure collapses into ErrInvalidCredentials.
	token, err := d.client.GetOAuthToken(email, password)
	if err != nil || token == nil || token.AccessToken == "" {
		return nil, repositories.ErrInvalidCredentials
	}

	user, err := d.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, repositories.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

func (d *CasdoorDirectory) GetByID(ctx context.Context, id string) (*models.User, error) {
	if cached := d.getUserFromCache(ctx, "id:"+id); cached != nil {
		return cached, nil
	}

	casdoorUser, err := d.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("directory: get user from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, repositories.ErrUserNotFound
	}

	user := d.convertCasdoorUserToModel(casdoorUser)
	d.setUserCache(ctx, "id:"+id, user)
	d.setUserCache(ctx, "email:"+user.Email, user)

	return user, nil
}

func (d *CasdoorDirectory) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	casdoorUsers, err := d.client.GetUsers()
	if err != nil {
		return nil, 0, fmt.Errorf("directory: list users from Casdoor: %w", err)
	}

	var users []*models.User
	for _, cu := range casdoorUsers {
		user := d.convertCasdoorUserToModel(cu)
		if user == nil {
			continue
		}
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(user.Email), q) &&
				!strings.Contains(strings.ToLower(user.FullName), q) {
				continue
			}
		}
		users = append(users, user)
	}

	total := int64(len(users))
	users = paginate(users, filters.Limit, filters.Offset)

	return users, total, nil
}

func (d *CasdoorDirectory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := d.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *CasdoorDirectory) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := d.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}
