package migrant

import (
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// Gender is the display set used by registration forms; not enforced by storage
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Migrant represents a registered migrant worker profile.
// MigrantID is the caller-assigned portable health ID and the only field
// with an enforced constraint (uniqueness); everything else is free text.
type Migrant struct {
	ID        types.ID `json:"id"`
	MigrantID string   `json:"migrant_id"`

	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       Gender `json:"gender"`
	StateOrigin  string `json:"state_origin"`
	LanguagePref string `json:"language_pref"`
	Phone        string `json:"phone"`
	Aadhaar      string `json:"aadhaar,omitempty"`
	District     string `json:"district"`
	Occupation   string `json:"occupation"`

	CreatedAt time.Time `json:"created_at"`
}

// RegisterMigrantRequest is the request to register a migrant worker
type RegisterMigrantRequest struct {
	MigrantID    string `json:"migrant_id" validate:"required,min=1,max=100"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       Gender `json:"gender"`
	StateOrigin  string `json:"state_origin"`
	LanguagePref string `json:"language_pref"`
	Phone        string `json:"phone"`
	Aadhaar      string `json:"aadhaar,omitempty"`
	District     string `json:"district"`
	Occupation   string `json:"occupation"`
}
