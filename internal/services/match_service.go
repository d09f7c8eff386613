package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/jungle-hr/pulse-match-service/internal/events"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

// Scoring weights. Shared office days dominate because a match nobody can
// meet in person is worthless.
const (
	weightSharedDay      = 3
	weightSharedInterest = 2
	weightSharedActivity = 1
	weightCrossCityHost  = 2

	// Pairs below this score are not worth suggesting.
	minSuggestScore = 3

	suggestCandidateLimit = 100
)

type matchService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewMatchService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) MatchService {
	return &matchService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: publisher,
	}
}

func (s *matchService) Suggest(ctx context.Context, user *models.User) (*MatchListResponse, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	candidates, _, err := s.repo.Profile().List(ctx, nil, repositories.ProfileFilters{Limit: suggestCandidateLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	var created []*models.Match
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, candidate := range candidates {
			if candidate.ID == profile.ID {
				continue
			}

			// A pair may already exist in either direction.
			existing, err := txRepo.Match().GetByPair(ctx, nil, profile.ID, candidate.ID)
			if err != nil && !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to check existing pair: %w", err)
			}
			if existing == nil {
				existing, err = txRepo.Match().GetByPair(ctx, nil, candidate.ID, profile.ID)
				if err != nil && !repositories.IsNotFoundError(err) {
					return fmt.Errorf("failed to check existing pair: %w", err)
				}
			}
			if existing != nil {
				continue
			}

			score, days, interests, activities := scorePair(profile, candidate)
			if score < minSuggestScore {
				continue
			}

			match := &models.Match{
				ProfileID:        profile.ID,
				MatchedProfileID: candidate.ID,
				Score:            score,
				Status:           models.MatchSuggested,
				SharedDays:       models.JSONFromStrings(days),
				SharedInterests:  models.JSONFromStrings(interests),
				SharedActivities: models.JSONFromStrings(activities),
			}
			if err := txRepo.Match().Create(ctx, nil, match); err != nil {
				return fmt.Errorf("failed to create match: %w", err)
			}
			match.MatchedProfile = candidate
			created = append(created, match)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, match := range created {
		s.publishMatchEvent(ctx, events.EventMatchFound, match, profile)
	}

	s.logger.Info("Match suggestions computed", "profile_id", profile.ID, "created", len(created))

	responses := make([]*MatchResponse, 0, len(created))
	for _, m := range created {
		responses = append(responses, &MatchResponse{Match: m, CanRespond: true})
	}
	return &MatchListResponse{Matches: responses, Total: int64(len(responses))}, nil
}

func (s *matchService) ListByUser(ctx context.Context, user *models.User, filters repositories.MatchFilters) (*MatchListResponse, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	matches, total, err := s.repo.Match().ListByProfile(ctx, nil, profile.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	responses := make([]*MatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, &MatchResponse{
			Match:      m,
			CanRespond: canRespond(m, profile.ID),
		})
	}
	return &MatchListResponse{Matches: responses, Total: total}, nil
}

// canRespond reports whether the profile may still answer the suggestion.
// Either participant of the pair can.
func canRespond(m *models.Match, profileID uint) bool {
	if m.Status != models.MatchSuggested {
		return false
	}
	return m.ProfileID == profileID || m.MatchedProfileID == profileID
}

func (s *matchService) Respond(ctx context.Context, matchID uint, req *MatchStatusRequest, user *models.User) (*MatchResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	match, err := s.repo.Match().GetByID(ctx, nil, matchID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if match.ProfileID != profile.ID && match.MatchedProfileID != profile.ID {
		return nil, NewPermissionError(user.ID, "match", "respond", "not a participant of this match")
	}
	if match.Status != models.MatchSuggested {
		return nil, ErrInvalidStatus
	}

	status := models.MatchStatus(req.Status)
	if err := s.repo.Match().UpdateStatus(ctx, nil, matchID, status); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	match.Status = status

	if status == models.MatchAccepted {
		s.publishMatchEvent(ctx, events.EventMatchAccepted, match, profile)
	}

	s.logger.Info("Match response recorded", "match_id", matchID, "status", status, "user_id", user.ID)

	return &MatchResponse{Match: match, CanRespond: false}, nil
}

func (s *matchService) GetStats(ctx context.Context) (*repositories.MatchStats, error) {
	stats, err := s.repo.Match().GetStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}
	return stats, nil
}

// publishMatchEvent emits the event best-effort. A broken bus must never fail
// the matching operation itself.
func (s *matchService) publishMatchEvent(ctx context.Context, eventType string, match *models.Match, profile *models.Profile) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewEvent(eventType, map[string]interface{}{
		"match_id":           match.ID,
		"profile_id":         match.ProfileID,
		"matched_profile_id": match.MatchedProfileID,
		"score":              match.Score,
		"city":               profile.City,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish match event", "event_type", eventType, "match_id", match.ID, "error", err)
	}
}

// scorePair computes the overlap score between two profiles and the shared
// attributes behind it.
func scorePair(a, b *models.Profile) (score int, days, interests, activities []string) {
	days = intersect(a.OfficeDayList(), b.OfficeDayList())
	interests = intersect(a.InterestList(), b.InterestList())
	activities = intersect(a.ActivityList(), b.ActivityList())

	score = weightSharedDay*len(days) +
		weightSharedInterest*len(interests) +
		weightSharedActivity*len(activities)

	// A host in another city opens cross-office visits even without day
	// overlap.
	if a.City != b.City && (a.HostingAvailable || b.HostingAvailable) {
		score += weightCrossCityHost
	}
	return score, days, interests, activities
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
