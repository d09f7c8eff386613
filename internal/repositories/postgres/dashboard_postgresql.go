package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/cache"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

type dashboardRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewDashboardRepository(db *gorm.DB, caches *cache.CacheManager) repositories.DashboardRepository {
	return &dashboardRepository{db: db, cache: caches.Stats}
}

// GetPresenceStats counts profiles per declared office day. The aggregate is
// cached; profile writes invalidate the stats prefix.
func (r *dashboardRepository) GetPresenceStats(ctx context.Context) (*repositories.PresenceStats, error) {
	var stats repositories.PresenceStats
	err := r.cache.CacheOrExecute(ctx, "presence", &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		fresh := &repositories.PresenceStats{
			ByDay: make(map[string]int64, len(models.OfficeDays)),
		}

		if err := r.db.WithContext(ctx).
			Model(&models.Profile{}).
			Count(&fresh.Total).Error; err != nil {
			return nil, handleDBError(err, "count profiles")
		}

		for _, day := range models.OfficeDays {
			var count int64
			err := r.db.WithContext(ctx).
				Model(&models.Profile{}).
				Where("office_days @> ?", fmt.Sprintf(`["%s"]`, day)).
				Count(&count).Error
			if err != nil {
				return nil, handleDBError(err, "count profiles by office day")
			}
			fresh.ByDay[day] = count
		}

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetHostingStats groups hosting availability by city.
func (r *dashboardRepository) GetHostingStats(ctx context.Context) ([]repositories.HostingStats, error) {
	var rows []repositories.HostingStats
	err := r.cache.CacheOrExecute(ctx, "hosting:by_city", &rows, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var fresh []repositories.HostingStats
		err := r.db.WithContext(ctx).
			Model(&models.Profile{}).
			Select("city, COUNT(*) FILTER (WHERE hosting_available) AS available, COUNT(*) AS total").
			Group("city").
			Order("city ASC").
			Scan(&fresh).Error
		if err != nil {
			return nil, handleDBError(err, "hosting stats by city")
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) GetRecentProfiles(ctx context.Context, limit int) ([]*models.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []*models.Profile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, handleDBError(err, "recent profiles")
	}
	return profiles, nil
}
