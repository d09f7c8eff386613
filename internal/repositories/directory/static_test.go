package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
)

func TestStaticDirectory_Authenticate(t *testing.T) {
	dir := NewStaticDirectory(DemoUsers())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantRole models.UserRole
	}{
		{
			name:     "known user correct password",
			email:    "emma@jungle.com",
			password: "jungle123",
			wantRole: models.RoleEmployee,
		},
		{
			name:     "email lookup is case insensitive",
			email:    "EMMA@Jungle.com",
			password: "jungle123",
			wantRole: models.RoleEmployee,
		},
		{
			name:     "known user wrong password",
			email:    "emma@jungle.com",
			password: "wrong",
			wantErr:  repositories.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@jungle.com",
			password: "jungle123",
			wantErr:  repositories.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := dir.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if user != nil {
					t.Fatal("expected nil user on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.wantRole {
				t.Errorf("expected role %s got %s", tt.wantRole, user.Role)
			}
		})
	}
}

func TestStaticDirectory_FailureShapeIndistinguishable(t *testing.T) {
	dir := NewStaticDirectory(DemoUsers())
	ctx := context.Background()

	_, errUnknown := dir.Authenticate(ctx, "nobody@jungle.com", "whatever")
	_, errWrongPw := dir.Authenticate(ctx, "emma@jungle.com", "whatever")

	if !errors.Is(errUnknown, repositories.ErrInvalidCredentials) ||
		!errors.Is(errWrongPw, repositories.ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials, got %v / %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("failure messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestStaticDirectory_LookupAndRoles(t *testing.T) {
	dir := NewStaticDirectory(DemoUsers())
	ctx := context.Background()

	user, err := dir.Lookup(ctx, "sarah@jungle.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user.Role != models.RoleHR {
		t.Errorf("expected hr role, got %s", user.Role)
	}

	ok, err := dir.HasRole(ctx, "sarah@jungle.com", models.RoleHR)
	if err != nil || !ok {
		t.Errorf("HasRole(hr) = %v, %v; want true, nil", ok, err)
	}

	ok, _ = dir.HasRole(ctx, "sarah@jungle.com", models.RoleManager)
	if ok {
		t.Error("HasRole(manager) should be false for an hr user")
	}

	if _, err := dir.Lookup(ctx, "ghost@jungle.com"); !errors.Is(err, repositories.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStaticDirectory_List(t *testing.T) {
	dir := NewStaticDirectory(DemoUsers())
	ctx := context.Background()

	role := models.RoleEmployee
	users, total, err := dir.List(ctx, repositories.UserFilters{Role: &role})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 employees, got %d", total)
	}
	for _, u := range users {
		if u.Role != models.RoleEmployee {
			t.Errorf("unexpected role %s in employee listing", u.Role)
		}
	}
}
