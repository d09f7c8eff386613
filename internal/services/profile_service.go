package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *profileService) Create(ctx context.Context, req *CreateProfileRequest, user *models.User) (*ProfileResponse, error) {
	s.logger.Info("Creating profile", "user_id", user.ID, "city", req.City)

	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := &models.Profile{
		UserID: user.ID,
		Name:   user.DisplayName(),
		Email:  user.Email,
		Role:   user.Role,

		OfficeDays: models.JSONFromStrings(req.OfficeDays),
		Interests:  models.JSONFromStrings(req.Interests),
		Activities: models.JSONFromStrings(req.Activities),

		Bio:  req.Bio,
		City: req.City,

		HostingAvailable: req.HostingAvailable,
		HostingDetails:   req.HostingDetails,
		HostingDates:     models.JSONFromStrings(req.HostingDates),
	}

	if err := s.repo.Profile().Create(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Profile created", "profile_id", profile.ID, "user_id", user.ID)

	return s.buildProfileResponse(profile, user.ID), nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID string, requesterID string) (*ProfileResponse, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return s.buildProfileResponse(profile, requesterID), nil
}

func (s *profileService) Update(ctx context.Context, req *UpdateProfileRequest, user *models.User) (*ProfileResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	applyProfileUpdate(profile, req)

	if err := s.repo.Profile().Update(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", "profile_id", profile.ID, "user_id", user.ID)

	return s.buildProfileResponse(profile, user.ID), nil
}

func (s *profileService) Delete(ctx context.Context, userID string, requester *models.User) error {
	if requester.ID != userID && requester.Role != models.RoleHR {
		return NewPermissionError(requester.ID, "profile", "delete", "only the owner or HR may delete a profile")
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if err := s.repo.Profile().Delete(ctx, nil, profile.ID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.logger.Info("Profile deleted", "profile_id", profile.ID, "by", requester.ID)
	return nil
}

func (s *profileService) List(ctx context.Context, req *ProfileListRequest, requesterID string) (*ProfileListResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	filters := listFilters(req)
	profiles, total, err := s.repo.Profile().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	responses := make([]*ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, s.buildProfileResponse(p, requesterID))
	}

	page := 1
	size := filters.Limit
	if size <= 0 {
		size = 20
	}
	if filters.Offset > 0 {
		page = filters.Offset/size + 1
	}

	return &ProfileListResponse{
		Profiles: responses,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

// listFilters maps the validated query DTO onto repository filters.
func listFilters(req *ProfileListRequest) repositories.ProfileFilters {
	filters := repositories.ProfileFilters{
		HostingAvailable: req.Hosting,
		Query:            req.Query,
		Limit:            req.Limit,
		Offset:           req.Offset,
		SortBy:           req.SortBy,
		SortOrder:        req.SortOrder,
	}
	if req.Role != "" {
		role := models.UserRole(req.Role)
		filters.Role = &role
	}
	if req.City != "" {
		filters.City = &req.City
	}
	if req.OfficeDay != "" {
		filters.OfficeDay = &req.OfficeDay
	}
	return filters
}

func (s *profileService) buildProfileResponse(profile *models.Profile, requesterID string) *ProfileResponse {
	return &ProfileResponse{
		Profile: profile,
		CanEdit: profile.UserID == requesterID,
	}
}

func applyProfileUpdate(profile *models.Profile, req *UpdateProfileRequest) {
	if req.OfficeDays != nil {
		profile.OfficeDays = models.JSONFromStrings(req.OfficeDays)
	}
	if req.Interests != nil {
		profile.Interests = models.JSONFromStrings(req.Interests)
	}
	if req.Activities != nil {
		profile.Activities = models.JSONFromStrings(req.Activities)
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.HostingAvailable != nil {
		profile.HostingAvailable = *req.HostingAvailable
	}
	if req.HostingDetails != nil {
		profile.HostingDetails = req.HostingDetails
	}
	if req.HostingDates != nil {
		profile.HostingDates = models.JSONFromStrings(req.HostingDates)
	}
}
