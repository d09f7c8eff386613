package validator

import "testing"

func TestValidateStruct_ProfileCreate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       ProfileCreateRequest
		wantField string
	}{
		{
			name: "valid",
			req: ProfileCreateRequest{
				OfficeDays: []string{"monday", "wednesday"},
				Interests:  []string{"coffee"},
				Activities: []string{"team_lunch"},
				City:       "Paris",
			},
		},
		{
			name: "missing office days",
			req: ProfileCreateRequest{
				City: "Paris",
			},
			wantField: "OfficeDays",
		},
		{
			name: "unknown weekday",
			req: ProfileCreateRequest{
				OfficeDays: []string{"saturday"},
				City:       "Paris",
			},
			wantField: "OfficeDays[0]",
		},
		{
			name: "unknown interest",
			req: ProfileCreateRequest{
				OfficeDays: []string{"monday"},
				Interests:  []string{"skydiving"},
				City:       "Paris",
			},
			wantField: "Interests[0]",
		},
		{
			name: "missing city",
			req: ProfileCreateRequest{
				OfficeDays: []string{"monday"},
			},
			wantField: "City",
		},
		{
			name: "bad hosting date",
			req: ProfileCreateRequest{
				OfficeDays:   []string{"monday"},
				City:         "Paris",
				HostingDates: []string{"04/09/2026"},
			},
			wantField: "HostingDates[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected error on %s, got none", tt.wantField)
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateStruct_Role(t *testing.T) {
	v := New()

	type roleHolder struct {
		Role string `validate:"required,pulse_role"`
	}

	if errs := v.ValidateStruct(&roleHolder{Role: "office_manager"}); len(errs) != 0 {
		t.Fatalf("valid role rejected: %v", errs)
	}
	if errs := v.ValidateStruct(&roleHolder{Role: "Office Manager"}); len(errs) == 0 {
		t.Fatal("legacy label should not pass raw validation")
	}
	if errs := v.ValidateStruct(&roleHolder{Role: "superadmin"}); len(errs) == 0 {
		t.Fatal("unknown role should fail")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "City", Message: "is required"},
	}
	if got := errs.Error(); got != "validation failed: City is required" {
		t.Errorf("Error() = %q", got)
	}

	many := ValidationErrors{
		{Field: "City"},
		{Field: "OfficeDays"},
	}
	if got := many.Error(); got != "validation failed: 2 field errors" {
		t.Errorf("Error() = %q", got)
	}
}
