package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Weekday identifiers a profile can declare as office days.
const (
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
)

// OfficeDays enumerates the allowed weekday identifiers in order.
var OfficeDays = []string{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}

// InterestTags is the fixed interest enumeration profiles draw from.
var InterestTags = []string{
	"coffee", "lunch", "running", "cycling", "bouldering", "board_games",
	"photography", "music", "cooking", "languages", "volunteering", "reading",
}

// ActivityTags is the fixed after-work activity enumeration.
var ActivityTags = []string{
	"afterwork_drinks", "team_lunch", "sport_session", "walk_and_talk",
	"coworking_day", "museum_visit", "city_tour",
}

// Profile holds an employee's matching attributes: which days they are in the
// office, what they are into, and whether they can host colleagues visiting
// from another office.
type Profile struct {
	ID     uint     `json:"id" gorm:"primaryKey"`
	UserID string   `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	Name   string   `json:"name" gorm:"not null;size:100"`
	Email  string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role   UserRole `json:"role" gorm:"not null;size:50"`

	OfficeDays datatypes.JSON `json:"office_days" gorm:"type:jsonb"` // []string, subset of OfficeDays
	Interests  datatypes.JSON `json:"interests" gorm:"type:jsonb"`   // []string
	Activities datatypes.JSON `json:"activities" gorm:"type:jsonb"`  // []string

	Bio  string `json:"bio" gorm:"size:2000"`
	City string `json:"city" gorm:"not null;size:100;index"`

	// Hosting availability for cross-office stays
	HostingAvailable bool           `json:"hosting_available" gorm:"default:false;index"`
	HostingDetails   *string        `json:"hosting_details,omitempty" gorm:"size:1000"`
	HostingDates     datatypes.JSON `json:"hosting_dates,omitempty" gorm:"type:jsonb"` // []string, ISO dates

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Profile) TableName() string {
	return "profiles"
}

// OfficeDayList decodes the jsonb office days column.
func (p *Profile) OfficeDayList() []string {
	return StringsFromJSON(p.OfficeDays)
}

// InterestList decodes the jsonb interests column.
func (p *Profile) InterestList() []string {
	return StringsFromJSON(p.Interests)
}

// ActivityList decodes the jsonb activities column.
func (p *Profile) ActivityList() []string {
	return StringsFromJSON(p.Activities)
}

// StringsFromJSON decodes a jsonb string array column. Malformed data decodes
// to nil rather than an error; the validator guards writes.
func StringsFromJSON(j datatypes.JSON) []string {
	if len(j) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}

// JSONFromStrings encodes a string slice for a jsonb column. A nil slice
// encodes as an empty array so the column is never SQL NULL.
func JSONFromStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

type MatchStatus string

const (
	MatchSuggested MatchStatus = "suggested"
	MatchAccepted  MatchStatus = "accepted"
	MatchDeclined  MatchStatus = "declined"
)

// Match links two profiles that overlap on office days and shared tags.
// Score counts the overlapping attributes so dashboards can rank suggestions.
type Match struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	ProfileID        uint        `json:"profile_id" gorm:"not null;index:idx_match_pair,unique"`
	MatchedProfileID uint        `json:"matched_profile_id" gorm:"not null;index:idx_match_pair,unique"`
	Score            int         `json:"score" gorm:"not null"`
	Status           MatchStatus `json:"status" gorm:"not null;default:'suggested';size:20"`

	SharedDays       datatypes.JSON `json:"shared_days" gorm:"type:jsonb"`       // []string
	SharedInterests  datatypes.JSON `json:"shared_interests" gorm:"type:jsonb"`  // []string
	SharedActivities datatypes.JSON `json:"shared_activities" gorm:"type:jsonb"` // []string

	// Set once a chat notification for this match has been sent.
	Notified bool `json:"notified" gorm:"default:false"`

	Profile        *Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	MatchedProfile *Profile `json:"matched_profile,omitempty" gorm:"foreignKey:MatchedProfileID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Match) TableName() string {
	return "matches"
}
