package visit

import (
	"context"
	"testing"
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// --- Model Tests ---

func TestSDGTagValues(t *testing.T) {
	tests := []struct {
		tag      SDGTag
		expected string
	}{
		{SDGTagHealth, "SDG3: Good Health"},
		{SDGTagInequalities, "SDG10: Reduced Inequalities"},
		{SDGTagBoth, "Both SDG3 & SDG10"},
		{SDGTagOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			if string(tt.tag) != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, tt.tag)
			}
		})
	}
}

func TestHealthRecordCreation(t *testing.T) {
	followUp := "2026-02-15"

	rec := HealthRecord{
		ID:           types.NewID(),
		MigrantID:    "KL-MH-0001",
		VisitDate:    "2026-02-01",
		Facility:     "PHC Perumbavoor",
		Complaints:   "Fever, cough",
		Diagnosis:    "Viral fever",
		Treatment:    "Paracetamol, rest",
		FollowUpDate: &followUp,
		DoctorName:   "Dr. Nair",
		SDGTag:       SDGTagHealth,
		CreatedAt:    time.Now(),
	}

	if rec.ID.IsZero() {
		t.Error("Record ID should not be zero")
	}

	if rec.VisitDate != "2026-02-01" {
		t.Errorf("Expected visit date '2026-02-01', got '%s'", rec.VisitDate)
	}

	if rec.FollowUpDate == nil || *rec.FollowUpDate != followUp {
		t.Error("Follow-up date should be set correctly")
	}

	if rec.SDGTag != SDGTagHealth {
		t.Errorf("Expected tag '%s', got '%s'", SDGTagHealth, rec.SDGTag)
	}
}

func TestHealthRecordWithoutFollowUp(t *testing.T) {
	rec := HealthRecord{
		ID:        types.NewID(),
		MigrantID: "KL-MH-0002",
		VisitDate: "2026-02-03",
	}

	if rec.FollowUpDate != nil {
		t.Error("Record without follow-up should have nil FollowUpDate")
	}
}

// --- Store Tests ---

func TestMemoryStoreAddAndListAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	empty, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty list, got %d records", len(empty))
	}

	rec := &HealthRecord{
		ID:        types.NewID(),
		MigrantID: "KL-MH-0010",
		VisitDate: "2026-01-05",
		SDGTag:    SDGTagOther,
	}
	if err := store.Add(ctx, rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(all))
	}
	if all[0].MigrantID != "KL-MH-0010" {
		t.Errorf("Expected migrant ID 'KL-MH-0010', got '%s'", all[0].MigrantID)
	}
}

func TestMemoryStoreListForMigrantOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	dates := []string{"2026-01-10", "2026-03-02", "2025-12-25", "2026-02-14"}
	for _, d := range dates {
		rec := &HealthRecord{
			ID:        types.NewID(),
			MigrantID: "KL-MH-0020",
			VisitDate: d,
		}
		if err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// A record for someone else must not show up
	other := &HealthRecord{ID: types.NewID(), MigrantID: "KL-MH-0021", VisitDate: "2026-04-01"}
	if err := store.Add(ctx, other); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := store.ListForMigrant(ctx, "KL-MH-0020")
	if err != nil {
		t.Fatalf("ListForMigrant failed: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(got))
	}

	expected := []string{"2026-03-02", "2026-02-14", "2026-01-10", "2025-12-25"}
	for i, d := range expected {
		if got[i].VisitDate != d {
			t.Errorf("Expected visit date '%s' at position %d, got '%s'", d, i, got[i].VisitDate)
		}
	}
}

func TestMemoryStoreSameDateKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	facilities := []string{"PHC A", "PHC B", "PHC C"}
	for _, f := range facilities {
		rec := &HealthRecord{
			ID:        types.NewID(),
			MigrantID: "KL-MH-0030",
			VisitDate: "2026-01-15",
			Facility:  f,
		}
		if err := store.Add(ctx, rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := store.ListForMigrant(ctx, "KL-MH-0030")
	if err != nil {
		t.Fatalf("ListForMigrant failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(got))
	}

	for i, f := range facilities {
		if got[i].Facility != f {
			t.Errorf("Expected facility '%s' at position %d, got '%s'", f, i, got[i].Facility)
		}
	}
}

func TestMemoryStoreOrphanRecordAccepted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// The migrant reference is advisory: no profile needs to exist
	rec := &HealthRecord{
		ID:        types.NewID(),
		MigrantID: "UNREGISTERED-001",
		VisitDate: "2026-01-20",
	}
	if err := store.Add(ctx, rec); err != nil {
		t.Fatalf("Add failed for orphan record: %v", err)
	}

	got, err := store.ListForMigrant(ctx, "UNREGISTERED-001")
	if err != nil {
		t.Fatalf("ListForMigrant failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 record, got %d", len(got))
	}
}

func TestMemoryStoreListForUnknownMigrant(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.ListForMigrant(ctx, "KL-MH-9999")
	if err != nil {
		t.Fatalf("ListForMigrant failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %d records", len(got))
	}
}
