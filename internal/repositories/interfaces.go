package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ProfileFilters struct {
	Role             *models.UserRole `json:"role"`
	City             *string          `json:"city"`
	OfficeDay        *string          `json:"office_day"` // profiles present on this weekday
	HostingAvailable *bool            `json:"hosting_available"`
	Query            string           `json:"query"` // name or email search
	Limit            int              `json:"limit"`
	Offset           int              `json:"offset"`
	SortBy           string           `json:"sort_by"`    // "created_at", "name", "city"
	SortOrder        string           `json:"sort_order"` // "asc", "desc"
}

type MatchFilters struct {
	Status   *models.MatchStatus `json:"status"`
	MinScore *int                `json:"min_score"`
	DateFrom *time.Time          `json:"date_from"`
	DateTo   *time.Time          `json:"date_to"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
}

type UserFilters struct {
	Query  string // Search query for name or email
	Role   *models.UserRole
	Limit  int
	Offset int
}

// ===== SHARED STATISTICS STRUCTS =====

type PresenceStats struct {
	// Profiles per weekday, keyed by the weekday identifier.
	ByDay map[string]int64 `json:"by_day"`
	Total int64            `json:"total"`
}

type HostingStats struct {
	City      string `json:"city"`
	Available int64  `json:"available"`
	Total     int64  `json:"total"`
}

type MatchStats struct {
	Total     int64   `json:"total"`
	Accepted  int64   `json:"accepted"`
	Declined  int64   `json:"declined"`
	Suggested int64   `json:"suggested"`
	AvgScore  float64 `json:"avg_score"`
}

// ===== DOMAIN REPOSITORY INTERFACES =====

// ProfileRepository persists employee profiles.
type ProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.Profile) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Profile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Profile, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Profile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.Profile) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	List(ctx context.Context, tx *gorm.DB, filters ProfileFilters) ([]*models.Profile, int64, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

// MatchRepository persists suggested and accepted matches between profiles.
type MatchRepository interface {
	Create(ctx context.Context, tx *gorm.DB, match *models.Match) error
	CreateBatch(ctx context.Context, tx *gorm.DB, matches []*models.Match) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Match, error)
	GetByPair(ctx context.Context, tx *gorm.DB, profileID, matchedProfileID uint) (*models.Match, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MatchStatus) error
	MarkNotified(ctx context.Context, tx *gorm.DB, id uint) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	ListByProfile(ctx context.Context, tx *gorm.DB, profileID uint, filters MatchFilters) ([]*models.Match, int64, error)
	GetStats(ctx context.Context, tx *gorm.DB) (*MatchStats, error)
}

// DashboardRepository serves the aggregate queries behind the role dashboards.
type DashboardRepository interface {
	GetPresenceStats(ctx context.Context) (*PresenceStats, error)
	GetHostingStats(ctx context.Context) ([]HostingStats, error)
	GetRecentProfiles(ctx context.Context, limit int) ([]*models.Profile, error)
}
