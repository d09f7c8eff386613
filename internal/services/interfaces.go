package services

import (
	"context"
	"time"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type LoginRequest = validator.LoginRequest
type CreateProfileRequest = validator.ProfileCreateRequest
type UpdateProfileRequest = validator.ProfileUpdateRequest
type ProfileListRequest = validator.ProfileListRequest
type MatchStatusRequest = validator.MatchStatusRequest
type NotifyMatchRequest = validator.NotifyMatchRequest

// LoginResponse carries the session token together with where the frontend
// should land the user. Redirect is /create-profile for an employee without a
// profile, otherwise the role's canonical route.
type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// SessionResponse describes the current session for GET /auth/session.
type SessionResponse struct {
	User     *models.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type ProfileResponse struct {
	*models.Profile
	CanEdit bool `json:"can_edit"`
}

type ProfileListResponse struct {
	Profiles []*ProfileResponse `json:"profiles"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
}

type MatchResponse struct {
	*models.Match
	CanRespond bool `json:"can_respond"`
}

type MatchListResponse struct {
	Matches []*MatchResponse `json:"matches"`
	Total   int64            `json:"total"`
}

// ===== DASHBOARD DTOs =====

type EmployeeDashboard struct {
	Profile   *models.Profile  `json:"profile"`
	Matches   []*MatchResponse `json:"matches"`
	WeekDays  []string         `json:"week_days"`
	Suggested int64            `json:"suggested"`
}

type ManagerDashboard struct {
	Presence *repositories.PresenceStats `json:"presence"`
	Matches  *repositories.MatchStats    `json:"matches"`
	Recent   []*models.Profile           `json:"recent_profiles"`
}

type HRDashboard struct {
	Presence    *repositories.PresenceStats `json:"presence"`
	Hosting     []repositories.HostingStats `json:"hosting"`
	Matches     *repositories.MatchStats    `json:"matches"`
	Recent      []*models.Profile           `json:"recent_profiles"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

type OfficeDashboard struct {
	Presence *repositories.PresenceStats `json:"presence"`
	Hosting  []repositories.HostingStats `json:"hosting"`
}

// ===== NOTIFICATION DTOs =====

type NotifyMatchResponse struct {
	Delivered    bool      `json:"delivered"`
	Participants []string  `json:"participants"`
	SentAt       time.Time `json:"sent_at"`
}

// ===== SERVICE INTERFACES =====

// AuthService owns login, the session slot and logout.
type AuthService interface {
	// Login verifies credentials against the user directory, writes the
	// session slot and returns the landing route for the user's role.
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)

	// CurrentSession resolves a token to its user, or session.ErrNoSession.
	CurrentSession(ctx context.Context, token string) (*SessionResponse, error)

	// Logout clears the session slot. Logging out an absent session is a
	// no-op, not an error.
	Logout(ctx context.Context, token string) error
}

type ProfileService interface {
	Create(ctx context.Context, req *CreateProfileRequest, user *models.User) (*ProfileResponse, error)
	GetByUserID(ctx context.Context, userID string, requesterID string) (*ProfileResponse, error)
	Update(ctx context.Context, req *UpdateProfileRequest, user *models.User) (*ProfileResponse, error)
	Delete(ctx context.Context, userID string, requester *models.User) error

	List(ctx context.Context, req *ProfileListRequest, requesterID string) (*ProfileListResponse, error)
}

type MatchService interface {
	// Suggest computes and persists new match suggestions for the user's
	// profile, skipping pairs that already exist.
	Suggest(ctx context.Context, user *models.User) (*MatchListResponse, error)

	ListByUser(ctx context.Context, user *models.User, filters repositories.MatchFilters) (*MatchListResponse, error)
	Respond(ctx context.Context, matchID uint, req *MatchStatusRequest, user *models.User) (*MatchResponse, error)
	GetStats(ctx context.Context) (*repositories.MatchStats, error)
}

type DashboardService interface {
	Employee(ctx context.Context, user *models.User) (*EmployeeDashboard, error)
	Manager(ctx context.Context) (*ManagerDashboard, error)
	HR(ctx context.Context) (*HRDashboard, error)
	Office(ctx context.Context) (*OfficeDashboard, error)

	// ExportHRReport renders the HR dashboard as an xlsx workbook.
	ExportHRReport(ctx context.Context) ([]byte, error)
}

type NotificationService interface {
	// NotifyMatch announces a match to its participants. The stub notifier
	// always reports success after a fixed delay.
	NotifyMatch(ctx context.Context, req *NotifyMatchRequest) (*NotifyMatchResponse, error)

	// SendOfficeDayReminders publishes reminder events for everyone present
	// on the given weekday.
	SendOfficeDayReminders(ctx context.Context, day string) (int, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	Profile() ProfileService
	Match() MatchService
	Dashboard() DashboardService
	Notification() NotificationService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
