package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/cache"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

type matchRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewMatchPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.MatchRepository {
	return &matchRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.MatchCacheConfig.Prefix),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *matchRepository) Create(ctx context.Context, tx *gorm.DB, match *models.Match) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(match).Error; err != nil {
		return handleDBError(err, "create match")
	}
	r.invalidateProfile(ctx, match.ProfileID)
	return nil
}

func (r *matchRepository) CreateBatch(ctx context.Context, tx *gorm.DB, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(&matches).Error; err != nil {
		return handleDBError(err, "create matches batch")
	}
	r.invalidateProfile(ctx, matches[0].ProfileID)
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Match, error) {
	db := r.getDB(tx)
	var match models.Match
	if err := db.WithContext(ctx).
		Preload("Profile").
		Preload("MatchedProfile").
		First(&match, id).Error; err != nil {
		return nil, handleDBError(err, "get match by id")
	}
	return &match, nil
}

func (r *matchRepository) GetByPair(ctx context.Context, tx *gorm.DB, profileID, matchedProfileID uint) (*models.Match, error) {
	db := r.getDB(tx)
	var match models.Match
	if err := db.WithContext(ctx).
		Where("profile_id = ? AND matched_profile_id = ?", profileID, matchedProfileID).
		First(&match).Error; err != nil {
		return nil, handleDBError(err, "get match by pair")
	}
	return &match, nil
}

func (r *matchRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MatchStatus) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return handleDBError(result.Error, "update match status")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update match status")
	}
	_ = cache.BatchInvalidate(ctx, r.cache, []string{"profile:*", "stats:*"})
	return nil
}

func (r *matchRepository) MarkNotified(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ?", id).
		Update("notified", true).Error; err != nil {
		return handleDBError(err, "mark match notified")
	}
	return nil
}

func (r *matchRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Match{}, id).Error; err != nil {
		return handleDBError(err, "delete match")
	}
	_ = cache.BatchInvalidate(ctx, r.cache, []string{"profile:*", "stats:*"})
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *matchRepository) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uint, filters repositories.MatchFilters) ([]*models.Match, int64, error) {
	db := r.getDB(tx)
	var matches []*models.Match
	var total int64

	// A participant sees the match from either side of the pair.
	query := db.WithContext(ctx).
		Model(&models.Match{}).
		Preload("Profile").
		Preload("MatchedProfile").
		Where("profile_id = ? OR matched_profile_id = ?", profileID, profileID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MinScore != nil {
		query = query.Where("score >= ?", *filters.MinScore)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count matches")
	}

	query = query.Order("score DESC, created_at DESC")
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&matches).Error; err != nil {
		return nil, 0, handleDBError(err, "list matches by profile")
	}

	return matches, total, nil
}

func (r *matchRepository) GetStats(ctx context.Context, tx *gorm.DB) (*repositories.MatchStats, error) {
	if tx != nil {
		return r.loadStats(ctx, tx)
	}

	var stats repositories.MatchStats
	err := r.cache.CacheOrExecute(ctx, "stats:totals", &stats, cache.MatchCacheConfig.TTL, func() (interface{}, error) {
		return r.loadStats(ctx, r.db)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *matchRepository) loadStats(ctx context.Context, db *gorm.DB) (*repositories.MatchStats, error) {
	stats := &repositories.MatchStats{}

	if err := db.WithContext(ctx).Model(&models.Match{}).Count(&stats.Total).Error; err != nil {
		return nil, handleDBError(err, "count matches total")
	}

	byStatus := []struct {
		Status models.MatchStatus
		Count  int64
	}{}
	if err := db.WithContext(ctx).
		Model(&models.Match{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, handleDBError(err, "count matches by status")
	}
	for _, row := range byStatus {
		switch row.Status {
		case models.MatchAccepted:
			stats.Accepted = row.Count
		case models.MatchDeclined:
			stats.Declined = row.Count
		case models.MatchSuggested:
			stats.Suggested = row.Count
		}
	}

	if stats.Total > 0 {
		if err := db.WithContext(ctx).
			Model(&models.Match{}).
			Select("COALESCE(AVG(score), 0)").
			Scan(&stats.AvgScore).Error; err != nil {
			return nil, handleDBError(err, "average match score")
		}
	}

	return stats, nil
}

// ===== HELPER METHODS =====

func (r *matchRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *matchRepository) invalidateProfile(ctx context.Context, profileID uint) {
	cache.SafeInvalidatePattern(ctx, r.cache, fmt.Sprintf("profile:%d:*", profileID))
	cache.SafeInvalidatePattern(ctx, r.cache, "stats:*")
}
