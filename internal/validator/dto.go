package validator

// LoginRequest is the credentials payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ProfileCreateRequest is the payload for creating an office profile.
type ProfileCreateRequest struct {
	OfficeDays []string `json:"office_days" validate:"required,min=1,dive,office_day"`
	Interests  []string `json:"interests" validate:"omitempty,dive,interest_tag"`
	Activities []string `json:"activities" validate:"omitempty,dive,activity_tag"`
	Bio        string   `json:"bio" validate:"max=2000"`
	City       string   `json:"city" validate:"required,max=100"`

	HostingAvailable bool     `json:"hosting_available"`
	HostingDetails   *string  `json:"hosting_details" validate:"omitempty,max=1000"`
	HostingDates     []string `json:"hosting_dates" validate:"omitempty,dive,datetime=2006-01-02"`
}

// ProfileUpdateRequest carries partial profile updates. Nil slices and
// pointers mean "leave unchanged".
type ProfileUpdateRequest struct {
	OfficeDays []string `json:"office_days" validate:"omitempty,min=1,dive,office_day"`
	Interests  []string `json:"interests" validate:"omitempty,dive,interest_tag"`
	Activities []string `json:"activities" validate:"omitempty,dive,activity_tag"`
	Bio        *string  `json:"bio" validate:"omitempty,max=2000"`
	City       *string  `json:"city" validate:"omitempty,max=100"`

	HostingAvailable *bool    `json:"hosting_available"`
	HostingDetails   *string  `json:"hosting_details" validate:"omitempty,max=1000"`
	HostingDates     []string `json:"hosting_dates" validate:"omitempty,dive,datetime=2006-01-02"`
}

// ProfileListRequest mirrors the query parameters of GET /profiles.
type ProfileListRequest struct {
	Role      string `form:"role" validate:"omitempty,pulse_role"`
	City      string `form:"city" validate:"omitempty,max=100"`
	OfficeDay string `form:"office_day" validate:"omitempty,office_day"`
	Hosting   *bool  `form:"hosting"`
	Query     string `form:"q" validate:"omitempty,max=255"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" validate:"omitempty,min=0"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at name city"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// MatchStatusRequest updates the status of a suggested match.
type MatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// NotifyMatchRequest asks the notification service to announce a match.
type NotifyMatchRequest struct {
	Participants []string `json:"participants" validate:"required,min=2,dive,email"`
	Activity     string   `json:"activity" validate:"required,activity_tag"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Location     string   `json:"location" validate:"max=200"`
}
