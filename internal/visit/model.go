package visit

import (
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// SDGTag is the display set used to tag health records for grouping.
// Storage does not enforce membership; any string is accepted.
type SDGTag string

const (
	SDGTagHealth       SDGTag = "SDG3: Good Health"
	SDGTagInequalities SDGTag = "SDG10: Reduced Inequalities"
	SDGTagBoth         SDGTag = "Both SDG3 & SDG10"
	SDGTagOther        SDGTag = "Other"
)

// HealthRecord represents one recorded health encounter.
// MigrantID is an advisory reference: it is not checked against the
// migrants table and orphaned records are tolerated. Records are
// immutable once written.
type HealthRecord struct {
	ID        types.ID `json:"id"`
	MigrantID string   `json:"migrant_id"`

	// VisitDate and FollowUpDate are ISO-8601 date strings; listing for a
	// migrant orders by VisitDate descending (lexicographic)
	VisitDate    string  `json:"visit_date"`
	Facility     string  `json:"facility"`
	Complaints   string  `json:"complaints"`
	Diagnosis    string  `json:"diagnosis"`
	Treatment    string  `json:"treatment"`
	FollowUpDate *string `json:"follow_up_date,omitempty"`
	DoctorName   string  `json:"doctor_name"`
	SDGTag       SDGTag  `json:"sdg_tag"`

	CreatedAt time.Time `json:"created_at"`
}

// AddRecordRequest is the request to add a health record
type AddRecordRequest struct {
	MigrantID    string  `json:"migrant_id" validate:"required"`
	VisitDate    string  `json:"visit_date" validate:"required"`
	Facility     string  `json:"facility"`
	Complaints   string  `json:"complaints"`
	Diagnosis    string  `json:"diagnosis"`
	Treatment    string  `json:"treatment"`
	FollowUpDate *string `json:"follow_up_date,omitempty"`
	DoctorName   string  `json:"doctor_name"`
	SDGTag       SDGTag  `json:"sdg_tag"`
}
