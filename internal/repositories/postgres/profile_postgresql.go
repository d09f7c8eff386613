package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/cache"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

type profileRepository struct {
	db     *gorm.DB
	cache  *cache.CacheHelper
	caches *cache.CacheManager
}

func NewProfilePostgreSQL(db *gorm.DB, caches *cache.CacheManager) repositories.ProfileRepository {
	return &profileRepository{
		db:     db,
		cache:  caches.Profile,
		caches: caches,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *profileRepository) Create(ctx context.Context, tx *gorm.DB, profile *models.Profile) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create profile")
	}
	r.invalidate(ctx, profile)
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Profile, error) {
	// Transactional reads bypass the cache.
	if tx != nil {
		var profile models.Profile
		if err := tx.WithContext(ctx).First(&profile, id).Error; err != nil {
			return nil, handleDBError(err, "get profile by id")
		}
		return &profile, nil
	}

	var profile models.Profile
	err := r.cache.CacheOrExecute(ctx, fmt.Sprintf("id:%d", id), &profile, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbProfile models.Profile
		if err := r.db.WithContext(ctx).First(&dbProfile, id).Error; err != nil {
			return nil, handleDBError(err, "get profile by id")
		}
		return &dbProfile, nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Profile, error) {
	db := r.getDB(tx)
	var profile models.Profile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, handleDBError(err, "get profile by user id")
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Profile, error) {
	db := r.getDB(tx)
	var profile models.Profile
	if err := db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, handleDBError(err, "get profile by email")
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, tx *gorm.DB, profile *models.Profile) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update profile")
	}
	r.invalidate(ctx, profile)
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Profile{}, id).Error; err != nil {
		return handleDBError(err, "delete profile")
	}
	_ = r.caches.InvalidateProfile(ctx, id)
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *profileRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ProfileFilters) ([]*models.Profile, int64, error) {
	db := r.getDB(tx)
	var profiles []*models.Profile
	var total int64

	query := db.WithContext(ctx).Model(&models.Profile{})
	query = r.applyProfileFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count profiles")
	}

	query = applySorting(query, filters.SortBy, filters.SortOrder, "created_at")
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, handleDBError(err, "list profiles")
	}

	return profiles, total, nil
}

func (r *profileRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check profile exists by email")
	}
	return count > 0, nil
}

// ===== HELPER METHODS =====

func (r *profileRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *profileRepository) invalidate(ctx context.Context, profile *models.Profile) {
	_ = r.caches.InvalidateProfile(ctx, profile.ID)
}

func (r *profileRepository) applyProfileFilters(query *gorm.DB, filters repositories.ProfileFilters) *gorm.DB {
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.City != nil {
		query = query.Where("city = ?", *filters.City)
	}
	if filters.HostingAvailable != nil {
		query = query.Where("hosting_available = ?", *filters.HostingAvailable)
	}
	if filters.OfficeDay != nil {
		// office_days is a jsonb array of weekday identifiers
		query = query.Where("office_days @> ?", fmt.Sprintf(`["%s"]`, *filters.OfficeDay))
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	return query
}

// IsNotFound reports whether err wraps a gorm record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
