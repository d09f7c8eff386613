package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

// fakeProfileRepo is an in-memory ProfileRepository for service tests.
type fakeProfileRepo struct {
	mu       sync.Mutex
	nextID   uint
	profiles map[uint]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{nextID: 1, profiles: make(map[uint]*models.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, _ *gorm.DB, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, _ *gorm.DB, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) List(_ context.Context, _ *gorm.DB, filters repositories.ProfileFilters) ([]*models.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Profile
	for _, p := range r.profiles {
		if filters.OfficeDay != nil && !containsString(p.OfficeDayList(), *filters.OfficeDay) {
			continue
		}
		if filters.Role != nil && p.Role != *filters.Role {
			continue
		}
		if filters.City != nil && p.City != *filters.City {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProfileRepo) ExistsByEmail(_ context.Context, _ *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(nil, nil, email)
	return err == nil, nil
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// fakeMatchRepo is an in-memory MatchRepository for service tests.
type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  uint
	matches map[uint]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, matches: make(map[uint]*models.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, _ *gorm.DB, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match.ID = r.nextID
	r.nextID++
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) CreateBatch(ctx context.Context, tx *gorm.DB, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, tx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.matches[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMatchRepo) GetByPair(_ context.Context, _ *gorm.DB, profileID, matchedProfileID uint) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ProfileID == profileID && m.MatchedProfileID == matchedProfileID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uint, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMatchRepo) MarkNotified(_ context.Context, _ *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Notified = true
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) ListByProfile(_ context.Context, _ *gorm.DB, profileID uint, _ repositories.MatchFilters) ([]*models.Match, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for _, m := range r.matches {
		if m.ProfileID == profileID || m.MatchedProfileID == profileID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMatchRepo) GetStats(_ context.Context, _ *gorm.DB) (*repositories.MatchStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.MatchStats{}
	for _, m := range r.matches {
		stats.Total++
		switch m.Status {
		case models.MatchAccepted:
			stats.Accepted++
		case models.MatchDeclined:
			stats.Declined++
		default:
			stats.Suggested++
		}
	}
	return stats, nil
}

// fakeDashboardRepo derives the dashboard aggregates from the profile fake so
// service tests see stats consistent with the seeded profiles.
type fakeDashboardRepo struct {
	profiles *fakeProfileRepo
}

func (r *fakeDashboardRepo) GetPresenceStats(_ context.Context) (*repositories.PresenceStats, error) {
	r.profiles.mu.Lock()
	defer r.profiles.mu.Unlock()

	stats := &repositories.PresenceStats{ByDay: make(map[string]int64)}
	for _, p := range r.profiles.profiles {
		stats.Total++
		for _, day := range p.OfficeDayList() {
			stats.ByDay[day]++
		}
	}
	return stats, nil
}

func (r *fakeDashboardRepo) GetHostingStats(_ context.Context) ([]repositories.HostingStats, error) {
	r.profiles.mu.Lock()
	defer r.profiles.mu.Unlock()

	byCity := make(map[string]*repositories.HostingStats)
	for _, p := range r.profiles.profiles {
		row, ok := byCity[p.City]
		if !ok {
			row = &repositories.HostingStats{City: p.City}
			byCity[p.City] = row
		}
		row.Total++
		if p.HostingAvailable {
			row.Available++
		}
	}

	out := make([]repositories.HostingStats, 0, len(byCity))
	for _, row := range byCity {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out, nil
}

func (r *fakeDashboardRepo) GetRecentProfiles(_ context.Context, limit int) ([]*models.Profile, error) {
	r.profiles.mu.Lock()
	defer r.profiles.mu.Unlock()

	out := make([]*models.Profile, 0, len(r.profiles.profiles))
	for _, p := range r.profiles.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeRepository bundles the in-memory repos behind the aggregate interface.
type fakeRepository struct {
	profiles  *fakeProfileRepo
	matchRepo *fakeMatchRepo
	dashboard *fakeDashboardRepo
	users     repositories.UserDirectory
}

func newFakeRepository(users repositories.UserDirectory) *fakeRepository {
	profiles := newFakeProfileRepo()
	return &fakeRepository{
		profiles:  profiles,
		matchRepo: newFakeMatchRepo(),
		dashboard: &fakeDashboardRepo{profiles: profiles},
		users:     users,
	}
}

func (r *fakeRepository) Profile() repositories.ProfileRepository     { return r.profiles }
func (r *fakeRepository) Match() repositories.MatchRepository         { return r.matchRepo }
func (r *fakeRepository) User() repositories.UserDirectory            { return r.users }
func (r *fakeRepository) Dashboard() repositories.DashboardRepository { return r.dashboard }

func (r *fakeRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(context.Context) error { return nil }
func (r *fakeRepository) Close() error               { return nil }
