package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

const recentProfileLimit = 10

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *dashboardService) Employee(ctx context.Context, user *models.User) (*EmployeeDashboard, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	matches, _, err := s.repo.Match().ListByProfile(ctx, nil, profile.ID, repositories.MatchFilters{Limit: 20})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	var suggested int64
	responses := make([]*MatchResponse, 0, len(matches))
	for _, m := range matches {
		if m.Status == models.MatchSuggested {
			suggested++
		}
		responses = append(responses, &MatchResponse{
			Match:      m,
			CanRespond: canRespond(m, profile.ID),
		})
	}

	return &EmployeeDashboard{
		Profile:   profile,
		Matches:   responses,
		WeekDays:  profile.OfficeDayList(),
		Suggested: suggested,
	}, nil
}

func (s *dashboardService) Manager(ctx context.Context) (*ManagerDashboard, error) {
	presence, err := s.repo.Dashboard().GetPresenceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get presence stats: %w", err)
	}

	matchStats, err := s.repo.Match().GetStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}

	recent, err := s.repo.Dashboard().GetRecentProfiles(ctx, recentProfileLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent profiles: %w", err)
	}

	return &ManagerDashboard{
		Presence: presence,
		Matches:  matchStats,
		Recent:   recent,
	}, nil
}

func (s *dashboardService) HR(ctx context.Context) (*HRDashboard, error) {
	presence, err := s.repo.Dashboard().GetPresenceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get presence stats: %w", err)
	}

	hosting, err := s.repo.Dashboard().GetHostingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hosting stats: %w", err)
	}

	matchStats, err := s.repo.Match().GetStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}

	recent, err := s.repo.Dashboard().GetRecentProfiles(ctx, recentProfileLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent profiles: %w", err)
	}

	return &HRDashboard{
		Presence:    presence,
		Hosting:     hosting,
		Matches:     matchStats,
		Recent:      recent,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *dashboardService) Office(ctx context.Context) (*OfficeDashboard, error) {
	presence, err := s.repo.Dashboard().GetPresenceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get presence stats: %w", err)
	}

	hosting, err := s.repo.Dashboard().GetHostingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hosting stats: %w", err)
	}

	return &OfficeDashboard{
		Presence: presence,
		Hosting:  hosting,
	}, nil
}

// ExportHRReport renders profiles, presence and hosting into an xlsx
// workbook for the HR dashboard download.
func (s *dashboardService) ExportHRReport(ctx context.Context) ([]byte, error) {
	dashboard, err := s.HR(ctx)
	if err != nil {
		return nil, err
	}

	profiles, _, err := s.repo.Profile().List(ctx, nil, repositories.ProfileFilters{Limit: 100, SortBy: "created_at"})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const profileSheet = "Profiles"
	f.SetSheetName("Sheet1", profileSheet)

	headers := []string{"Name", "Email", "Role", "City", "Office Days", "Interests", "Hosting"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(profileSheet, cell, h)
	}

	for row, p := range profiles {
		values := []interface{}{
			p.Name,
			p.Email,
			string(p.Role),
			p.City,
			strings.Join(p.OfficeDayList(), ", "),
			strings.Join(p.InterestList(), ", "),
			p.HostingAvailable,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(profileSheet, cell, v)
		}
	}

	const presenceSheet = "Presence"
	if _, err := f.NewSheet(presenceSheet); err != nil {
		return nil, fmt.Errorf("failed to create presence sheet: %w", err)
	}
	f.SetCellValue(presenceSheet, "A1", "Day")
	f.SetCellValue(presenceSheet, "B1", "Profiles")
	for i, day := range models.OfficeDays {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		f.SetCellValue(presenceSheet, cellA, day)
		f.SetCellValue(presenceSheet, cellB, dashboard.Presence.ByDay[day])
	}

	const hostingSheet = "Hosting"
	if _, err := f.NewSheet(hostingSheet); err != nil {
		return nil, fmt.Errorf("failed to create hosting sheet: %w", err)
	}
	f.SetCellValue(hostingSheet, "A1", "City")
	f.SetCellValue(hostingSheet, "B1", "Hosts Available")
	f.SetCellValue(hostingSheet, "C1", "Profiles")
	for i, h := range dashboard.Hosting {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		cellC, _ := excelize.CoordinatesToCellName(3, i+2)
		f.SetCellValue(hostingSheet, cellA, h.City)
		f.SetCellValue(hostingSheet, cellB, h.Available)
		f.SetCellValue(hostingSheet, cellC, h.Total)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("HR report exported", "profiles", len(profiles))
	return buf.Bytes(), nil
}
