package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/config"
	"github.com/jungle-hr/pulse-match-service/internal/events"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/session"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	LoginDelay  time.Duration
	NotifyDelay time.Duration

	// Outbound chat webhook; empty keeps the stub notifier.
	ChatWebhookURL string

	DefaultTimeout time.Duration
}

// ConfigFromApp derives the service manager configuration from the
// application config.
func ConfigFromApp(cfg *config.Config) ServiceManagerConfig {
	return ServiceManagerConfig{
		EnableDebugLogging: !cfg.IsProduction(),
		LogLevel:           cfg.LogLevel,
		LoginDelay:         cfg.LoginDelay,
		NotifyDelay:        cfg.NotifyDelay,
		ChatWebhookURL:     cfg.ChatWebhookURL,
		DefaultTimeout:     30 * time.Second,
	}
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	sessions  session.Store
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	authService         AuthService
	profileService      ProfileService
	matchService        MatchService
	dashboardService    DashboardService
	notificationService NotificationService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, sessions session.Store, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.sessions, sm.logger, sm.validator, sm.config.LoginDelay)
	sm.logger.Info("Auth service initialized")

	sm.profileService = NewProfileService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.logger.Info("Profile service initialized")

	sm.matchService = NewMatchService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher)
	sm.logger.Info("Match service initialized")

	sm.dashboardService = NewDashboardService(sm.repo, sm.db, sm.logger)
	sm.logger.Info("Dashboard service initialized")

	var notifier Notifier
	if sm.config.ChatWebhookURL != "" {
		notifier = NewWebhookNotifier(sm.config.ChatWebhookURL, sm.logger)
	} else {
		notifier = NewStubNotifier(sm.config.NotifyDelay, sm.logger)
	}
	sm.notificationService = NewNotificationService(sm.repo, notifier, sm.publisher, sm.logger, sm.validator)
	sm.logger.Info("Notification service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.profileService
}

func (sm *serviceManager) Match() MatchService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.matchService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.notificationService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	if err := sm.sessions.Ping(ctx); err != nil {
		return fmt.Errorf("session store health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.sessions.Close(); err != nil {
		sm.logger.Error("Failed to close session store", "error", err)
	}

	if repoManager, ok := sm.repo.(repositories.RepositoryManager); ok {
		if err := repoManager.Shutdown(ctx); err != nil {
			sm.logger.Error("Failed to shutdown repository manager", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
