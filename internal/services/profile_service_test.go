package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories/directory"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

func newTestProfileService(t *testing.T) (ProfileService, *fakeRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository(directory.NewStaticDirectory(directory.DemoUsers()))
	svc := NewProfileService(repo, nil, logger, validator.New())
	return svc, repo
}

func TestProfileService_Create(t *testing.T) {
	svc, _ := newTestProfileService(t)

	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", FullName: "Emma Moreau", Role: models.RoleEmployee}
	req := &CreateProfileRequest{
		OfficeDays: []string{models.DayMonday, models.DayWednesday},
		Interests:  []string{"coffee"},
		City:       "Paris",
	}

	resp, err := svc.Create(context.Background(), req, user)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if resp.Name != "Emma Moreau" {
		t.Errorf("name = %q, want Emma Moreau", resp.Name)
	}
	if resp.Role != models.RoleEmployee {
		t.Errorf("role = %s, want %s", resp.Role, models.RoleEmployee)
	}
	if !resp.CanEdit {
		t.Error("owner must be able to edit their own profile")
	}

	t.Run("second create is rejected", func(t *testing.T) {
		if _, err := svc.Create(context.Background(), req, user); !errors.Is(err, ErrProfileExists) {
			t.Fatalf("expected ErrProfileExists, got %v", err)
		}
	})
}

func TestProfileService_Create_Validation(t *testing.T) {
	svc, _ := newTestProfileService(t)
	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", Role: models.RoleEmployee}

	tests := []struct {
		name string
		req  *CreateProfileRequest
	}{
		{
			name: "unknown office day",
			req:  &CreateProfileRequest{OfficeDays: []string{"saturday"}, City: "Paris"},
		},
		{
			name: "no office days",
			req:  &CreateProfileRequest{City: "Paris"},
		},
		{
			name: "missing city",
			req:  &CreateProfileRequest{OfficeDays: []string{models.DayMonday}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req, user); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestProfileService_GetByUserID(t *testing.T) {
	svc, repo := newTestProfileService(t)
	addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris", []string{models.DayMonday}, nil, nil, false)

	t.Run("owner can edit", func(t *testing.T) {
		resp, err := svc.GetByUserID(context.Background(), "u-emma", "u-emma")
		if err != nil {
			t.Fatalf("GetByUserID(): %v", err)
		}
		if !resp.CanEdit {
			t.Error("owner should see can_edit=true")
		}
	})

	// Profiles are browsable by any logged-in colleague; only editing is
	// restricted to the owner.
	t.Run("colleague can read but not edit", func(t *testing.T) {
		resp, err := svc.GetByUserID(context.Background(), "u-emma", "u-leo")
		if err != nil {
			t.Fatalf("GetByUserID(): %v", err)
		}
		if resp.CanEdit {
			t.Error("colleague should see can_edit=false")
		}
		if resp.Email != "emma@jungle.com" {
			t.Errorf("email = %q, want emma@jungle.com", resp.Email)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.GetByUserID(context.Background(), "u-ghost", "u-emma"); !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestProfileService_Update(t *testing.T) {
	svc, repo := newTestProfileService(t)
	addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris",
		[]string{models.DayMonday, models.DayFriday}, []string{"coffee"}, nil, false)

	user := &models.User{ID: "u-emma", Email: "emma@jungle.com", Role: models.RoleEmployee}
	city := "Lyon"

	resp, err := svc.Update(context.Background(), &UpdateProfileRequest{City: &city}, user)
	if err != nil {
		t.Fatalf("Update(): %v", err)
	}
	if resp.City != "Lyon" {
		t.Errorf("city = %q, want Lyon", resp.City)
	}
	// Fields absent from the request stay untouched.
	if days := resp.OfficeDayList(); len(days) != 2 {
		t.Errorf("office days = %v, want the original two", days)
	}

	t.Run("no profile yet", func(t *testing.T) {
		ghost := &models.User{ID: "u-ghost", Role: models.RoleEmployee}
		if _, err := svc.Update(context.Background(), &UpdateProfileRequest{City: &city}, ghost); !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestProfileService_Delete(t *testing.T) {
	svc, repo := newTestProfileService(t)
	addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris", []string{models.DayMonday}, nil, nil, false)

	t.Run("other employee is rejected", func(t *testing.T) {
		leo := &models.User{ID: "u-leo", Role: models.RoleEmployee}
		err := svc.Delete(context.Background(), "u-emma", leo)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})

	t.Run("hr can delete any profile", func(t *testing.T) {
		sarah := &models.User{ID: "u-sarah", Role: models.RoleHR}
		if err := svc.Delete(context.Background(), "u-emma", sarah); err != nil {
			t.Fatalf("Delete(): %v", err)
		}
		if _, err := svc.GetByUserID(context.Background(), "u-emma", "u-sarah"); !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("profile should be gone, got %v", err)
		}
	})

	t.Run("owner deletes own profile", func(t *testing.T) {
		addProfile(t, repo, "u-leo", "leo@jungle.com", "Paris", []string{models.DayMonday}, nil, nil, false)
		leo := &models.User{ID: "u-leo", Role: models.RoleEmployee}
		if err := svc.Delete(context.Background(), "u-leo", leo); err != nil {
			t.Fatalf("Delete(): %v", err)
		}
	})
}

func TestProfileService_List(t *testing.T) {
	svc, repo := newTestProfileService(t)
	addProfile(t, repo, "u-emma", "emma@jungle.com", "Paris", []string{models.DayMonday}, nil, nil, false)
	addProfile(t, repo, "u-leo", "leo@jungle.com", "Lyon", []string{models.DayFriday}, nil, nil, true)
	manager := addProfile(t, repo, "u-marc", "marc@jungle.com", "Paris", []string{models.DayMonday}, nil, nil, false)
	manager.Role = models.RoleManager

	t.Run("role filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &ProfileListRequest{Role: "manager"}, "u-emma")
		if err != nil {
			t.Fatalf("List(): %v", err)
		}
		if resp.Total != 1 {
			t.Fatalf("total = %d, want 1", resp.Total)
		}
		if resp.Profiles[0].Email != "marc@jungle.com" {
			t.Errorf("email = %q, want marc@jungle.com", resp.Profiles[0].Email)
		}
	})

	t.Run("unknown role is a validation error", func(t *testing.T) {
		if _, err := svc.List(context.Background(), &ProfileListRequest{Role: "superadmin"}, "u-emma"); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})

	t.Run("unknown office day is a validation error", func(t *testing.T) {
		if _, err := svc.List(context.Background(), &ProfileListRequest{OfficeDay: "sunday"}, "u-emma"); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})

	t.Run("city filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &ProfileListRequest{City: "Lyon"}, "u-emma")
		if err != nil {
			t.Fatalf("List(): %v", err)
		}
		if resp.Total != 1 || resp.Profiles[0].Email != "leo@jungle.com" {
			t.Errorf("expected only leo in Lyon, got %d profiles", resp.Total)
		}
	})
}
