package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/cache"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/repositories/directory"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	profile   repositories.ProfileRepository
	match     repositories.MatchRepository
	user      repositories.UserDirectory
	dashboard repositories.DashboardRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client

	// User directory selection: the static demo table or Casdoor.
	UserDirectory string
	CasdoorConfig directory.CasdoorConfig
}

// NewPostgreSQLRepository creates a new repository aggregate with all
// sub-repositories wired to their backing stores.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	repo.profile = NewProfilePostgreSQL(config.DB, cacheManager)
	repo.match = NewMatchPostgreSQL(config.DB, config.RedisClient)
	repo.dashboard = NewDashboardRepository(config.DB, cacheManager)

	// User data is owned by the directory, not this service's database.
	if config.UserDirectory == "casdoor" {
		repo.user = directory.NewCasdoorDirectory(config.CasdoorConfig, config.RedisClient)
	} else {
		repo.user = directory.NewStaticDirectory(directory.DemoUsers())
	}

	return repo
}

func (r *PostgreSQLRepository) Profile() repositories.ProfileRepository {
	return r.profile
}

func (r *PostgreSQLRepository) Match() repositories.MatchRepository {
	return r.match
}

func (r *PostgreSQLRepository) User() repositories.UserDirectory {
	return r.user
}

func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

// WithTransaction runs fn against a transactional copy of the repository.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
			profile:      NewProfilePostgreSQL(tx, r.cacheManager),
			match:        NewMatchPostgreSQL(tx, r.redisClient),
			user:         r.user,
			dashboard:    NewDashboardRepository(tx, r.cacheManager),
		}
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("repository: unwrap sql.DB: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager wraps repository construction with lifecycle hooks.
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("repository manager: database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository manager: not initialized")
	}
	if err := m.repo.Ping(ctx); err != nil {
		return err
	}
	// Cache is optional; only report it unhealthy when it is configured.
	if pg, ok := m.repo.(*PostgreSQLRepository); ok {
		if err := pg.cacheManager.HealthCheck(ctx); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
			return err
		}
	}
	return nil
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}

// ===== SHARED HELPERS =====

// handleDBError is a package-level helper for wrapping database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

func applySorting(query *gorm.DB, sortBy, sortOrder, fallback string) *gorm.DB {
	column := fallback
	switch sortBy {
	case "created_at", "name", "city", "updated_at":
		column = sortBy
	}
	order := "DESC"
	if sortOrder == "asc" {
		order = "ASC"
	}
	return query.Order(fmt.Sprintf("%s %s", column, order))
}
