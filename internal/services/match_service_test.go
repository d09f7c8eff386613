package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/jungle-hr/pulse-match-service/internal/events"
	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/repositories/directory"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

func newTestMatchService(t *testing.T) (MatchService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository(directory.NewStaticDirectory(directory.DemoUsers()))
	publisher := events.NewMockEventPublisher(logger)
	svc := NewMatchService(repo, nil, logger, validator.New(), publisher)
	return svc, repo, publisher
}

func addProfile(t *testing.T, repo *fakeRepository, userID, email, city string, days, interests, activities []string, hosting bool) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:           userID,
		Name:             userID,
		Email:            email,
		Role:             models.RoleEmployee,
		City:             city,
		OfficeDays:       models.JSONFromStrings(days),
		Interests:        models.JSONFromStrings(interests),
		Activities:       models.JSONFromStrings(activities),
		HostingAvailable: hosting,
	}
	if err := repo.profiles.Create(context.Background(), nil, profile); err != nil {
		t.Fatalf("add profile: %v", err)
	}
	return profile
}

func TestScorePair(t *testing.T) {
	tests := []struct {
		name      string
		a, b      *models.Profile
		wantScore int
		wantDays  []string
	}{
		{
			name: "two shared days and one shared interest",
			a: &models.Profile{
				City:       "Paris",
				OfficeDays: models.JSONFromStrings([]string{"monday", "tuesday", "friday"}),
				Interests:  models.JSONFromStrings([]string{"coffee", "running"}),
			},
			b: &models.Profile{
				City:       "Paris",
				OfficeDays: models.JSONFromStrings([]string{"monday", "tuesday"}),
				Interests:  models.JSONFromStrings([]string{"coffee"}),
			},
			wantScore: 2*weightSharedDay + weightSharedInterest,
			wantDays:  []string{"monday", "tuesday"},
		},
		{
			name: "cross city host bonus without overlap",
			a: &models.Profile{
				City:             "Paris",
				OfficeDays:       models.JSONFromStrings([]string{"monday"}),
				HostingAvailable: true,
			},
			b: &models.Profile{
				City:       "Lyon",
				OfficeDays: models.JSONFromStrings([]string{"friday"}),
			},
			wantScore: weightCrossCityHost,
		},
		{
			name:      "empty profiles score zero",
			a:         &models.Profile{City: "Paris"},
			b:         &models.Profile{City: "Paris"},
			wantScore: 0,
		},
		{
			name: "shared activity counts once",
			a: &models.Profile{
				City:       "Paris",
				Activities: models.JSONFromStrings([]string{"team_lunch", "sport_session"}),
			},
			b: &models.Profile{
				City:       "Paris",
				Activities: models.JSONFromStrings([]string{"team_lunch"}),
			},
			wantScore: weightSharedActivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, days, _, _ := scorePair(tt.a, tt.b)
			if score != tt.wantScore {
				t.Errorf("scorePair() score = %d, want %d", score, tt.wantScore)
			}
			if tt.wantDays != nil && !reflect.DeepEqual(days, tt.wantDays) {
				t.Errorf("scorePair() days = %v, want %v", days, tt.wantDays)
			}
		})
	}
}

func TestMatchService_Suggest(t *testing.T) {
	svc, repo, publisher := newTestMatchService(t)

	addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris",
		[]string{"monday", "wednesday"}, []string{"coffee", "running"}, []string{"team_lunch"}, false)
	addProfile(t, repo, "u-leo", "leo@jungle.com", "Paris",
		[]string{"monday", "wednesday"}, []string{"coffee"}, nil, false)
	// No overlap and same city: should not be suggested.
	addProfile(t, repo, "u-marc", "marc@jungle.com", "Paris",
		[]string{"friday"}, []string{"photography"}, nil, false)

	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", Role: models.RoleEmployee}

	resp, err := svc.Suggest(context.Background(), user)
	if err != nil {
		t.Fatalf("Suggest(): %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Suggest() created %d matches, want 1", resp.Total)
	}

	match := resp.Matches[0]
	if match.Status != models.MatchSuggested {
		t.Errorf("status = %s, want %s", match.Status, models.MatchSuggested)
	}
	wantScore := 2*weightSharedDay + weightSharedInterest
	if match.Score != wantScore {
		t.Errorf("score = %d, want %d", match.Score, wantScore)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(published))
	}
	if published[0].Type != events.EventMatchFound {
		t.Errorf("event type = %s, want %s", published[0].Type, events.EventMatchFound)
	}

	// A second run must not duplicate the existing pair.
	resp, err = svc.Suggest(context.Background(), user)
	if err != nil {
		t.Fatalf("second Suggest(): %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("second Suggest() created %d matches, want 0", resp.Total)
	}
}

func TestMatchService_Suggest_ReversePairNotDuplicated(t *testing.T) {
	svc, repo, _ := newTestMatchService(t)

	emma := addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris",
		[]string{"monday"}, []string{"coffee"}, nil, false)
	leo := addProfile(t, repo, "u-leo", "leo@jungle.com", "Paris",
		[]string{"monday"}, []string{"coffee"}, nil, false)

	// Leo's run already paired them; Emma's run must not mirror the pair.
	existing := &models.Match{ProfileID: leo.ID, MatchedProfileID: emma.ID, Score: 5, Status: models.MatchSuggested}
	if err := repo.matchRepo.Create(context.Background(), nil, existing); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", Role: models.RoleEmployee}
	resp, err := svc.Suggest(context.Background(), user)
	if err != nil {
		t.Fatalf("Suggest(): %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("Suggest() created %d matches, want 0", resp.Total)
	}
}

func TestMatchService_ListByUser_BothDirections(t *testing.T) {
	svc, repo, _ := newTestMatchService(t)

	emma := addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris",
		[]string{"monday"}, nil, nil, false)
	leo := addProfile(t, repo, "u-leo", "leo@jungle.com", "Paris",
		[]string{"monday"}, nil, nil, false)

	match := &models.Match{ProfileID: leo.ID, MatchedProfileID: emma.ID, Score: 3, Status: models.MatchSuggested}
	if err := repo.matchRepo.Create(context.Background(), nil, match); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	// Emma is the matched side of the pair and must still see and be able to
	// answer the suggestion.
	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", Role: models.RoleEmployee}
	resp, err := svc.ListByUser(context.Background(), user, repositories.MatchFilters{})
	if err != nil {
		t.Fatalf("ListByUser(): %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if !resp.Matches[0].CanRespond {
		t.Error("matched-side participant should be able to respond")
	}
}

func TestMatchService_Suggest_NoProfile(t *testing.T) {
	svc, _, _ := newTestMatchService(t)

	user := &models.User{ID: "u-ghost", Role: models.RoleEmployee}
	_, err := svc.Suggest(context.Background(), user)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMatchService_Respond(t *testing.T) {
	svc, repo, publisher := newTestMatchService(t)

	a := addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris",
		[]string{"monday"}, []string{"coffee"}, nil, false)
	b := addProfile(t, repo, "u-leo", "leo@jungle.com", "Paris",
		[]string{"monday"}, []string{"coffee"}, nil, false)

	match := &models.Match{ProfileID: a.ID, MatchedProfileID: b.ID, Score: 5, Status: models.MatchSuggested}
	if err := repo.matchRepo.Create(context.Background(), nil, match); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	emma := &models.User{ID: "u-emma", Role: models.RoleEmployee}

	t.Run("accept publishes event", func(t *testing.T) {
		publisher.ClearEvents()
		resp, err := svc.Respond(context.Background(), match.ID, &MatchStatusRequest{Status: "accepted"}, emma)
		if err != nil {
			t.Fatalf("Respond(): %v", err)
		}
		if resp.Status != models.MatchAccepted {
			t.Errorf("status = %s, want %s", resp.Status, models.MatchAccepted)
		}
		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventMatchAccepted {
			t.Errorf("expected one %s event, got %v", events.EventMatchAccepted, published)
		}
	})

	t.Run("responding twice fails", func(t *testing.T) {
		_, err := svc.Respond(context.Background(), match.ID, &MatchStatusRequest{Status: "declined"}, emma)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("non participant is rejected", func(t *testing.T) {
		other := addProfile(t, repo, "u-marc", "marc@jungle.com", "Lyon", []string{"friday"}, nil, nil, false)
		_ = other
		second := &models.Match{ProfileID: a.ID, MatchedProfileID: b.ID, Score: 1, Status: models.MatchSuggested}
		if err := repo.matchRepo.Create(context.Background(), nil, second); err != nil {
			t.Fatalf("seed match: %v", err)
		}
		marc := &models.User{ID: "u-marc", Role: models.RoleEmployee}
		_, err := svc.Respond(context.Background(), second.ID, &MatchStatusRequest{Status: "accepted"}, marc)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := svc.Respond(context.Background(), 9999, &MatchStatusRequest{Status: "accepted"}, emma)
		if !errors.Is(err, ErrMatchNotFound) {
			t.Fatalf("expected ErrMatchNotFound, got %v", err)
		}
	})
}
