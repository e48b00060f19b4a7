package migrant

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// --- Model Tests ---

func TestGenderValues(t *testing.T) {
	tests := []struct {
		gender   Gender
		expected string
	}{
		{GenderMale, "Male"},
		{GenderFemale, "Female"},
		{GenderOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.gender), func(t *testing.T) {
			if string(tt.gender) != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, tt.gender)
			}
		})
	}
}

func TestMigrantCreation(t *testing.T) {
	m := Migrant{
		ID:           types.NewID(),
		MigrantID:    "KL-MH-0001",
		Name:         "Ramesh Kumar",
		Age:          32,
		Gender:       GenderMale,
		StateOrigin:  "Bihar",
		LanguagePref: "Hindi",
		Phone:        "+91 98765 43210",
		District:     "Ernakulam",
		Occupation:   "Construction",
		CreatedAt:    time.Now(),
	}

	if m.ID.IsZero() {
		t.Error("Migrant ID should not be zero")
	}

	if m.MigrantID != "KL-MH-0001" {
		t.Errorf("Expected migrant ID 'KL-MH-0001', got '%s'", m.MigrantID)
	}

	if m.District != "Ernakulam" {
		t.Errorf("Expected district 'Ernakulam', got '%s'", m.District)
	}

	if m.Gender != GenderMale {
		t.Errorf("Expected gender Male, got '%s'", m.Gender)
	}
}

func TestRegisterMigrantRequest(t *testing.T) {
	req := RegisterMigrantRequest{
		MigrantID:   "KL-MH-0002",
		Name:        "Sita Devi",
		Age:         28,
		Gender:      GenderFemale,
		StateOrigin: "West Bengal",
		District:    "Kozhikode",
	}

	if req.MigrantID == "" {
		t.Error("Migrant ID should not be empty")
	}

	if req.Name == "" {
		t.Error("Name should not be empty")
	}

	if req.Gender != GenderFemale {
		t.Errorf("Expected gender Female, got '%s'", req.Gender)
	}
}

// --- Store Tests ---

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	m := &Migrant{
		ID:        types.NewID(),
		MigrantID: "KL-MH-0010",
		Name:      "Arjun Singh",
		District:  "Thrissur",
		CreatedAt: time.Now().UTC(),
	}

	if err := store.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByMigrantID(ctx, "KL-MH-0010")
	if err != nil {
		t.Fatalf("GetByMigrantID failed: %v", err)
	}

	if got.MigrantID != m.MigrantID {
		t.Errorf("Expected migrant ID '%s', got '%s'", m.MigrantID, got.MigrantID)
	}

	if got.Name != "Arjun Singh" {
		t.Errorf("Expected name 'Arjun Singh', got '%s'", got.Name)
	}

	if got.District != "Thrissur" {
		t.Errorf("Expected district 'Thrissur', got '%s'", got.District)
	}
}

func TestMemoryStoreDuplicateMigrantID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &Migrant{ID: types.NewID(), MigrantID: "KL-MH-0020", Name: "First"}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &Migrant{ID: types.NewID(), MigrantID: "KL-MH-0020", Name: "Second"}
	err := store.Create(ctx, dup)
	if err == nil {
		t.Fatal("Expected conflict error for duplicate migrant ID")
	}

	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("Expected conflict error, got %v", err)
	}

	// Original row must be untouched
	got, err := store.GetByMigrantID(ctx, "KL-MH-0020")
	if err != nil {
		t.Fatalf("GetByMigrantID failed: %v", err)
	}
	if got.Name != "First" {
		t.Errorf("Expected name 'First', got '%s'", got.Name)
	}
}

func TestMemoryStoreLookupIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	m := &Migrant{ID: types.NewID(), MigrantID: "kl-mh-0030"}
	if err := store.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetByMigrantID(ctx, "KL-MH-0030"); err == nil {
		t.Error("Expected not found for different-case migrant ID")
	}

	if _, err := store.GetByMigrantID(ctx, "kl-mh-0030"); err != nil {
		t.Errorf("Exact-case lookup failed: %v", err)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetByMigrantID(ctx, "KL-MH-9999")
	if err == nil {
		t.Fatal("Expected not found error")
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	empty, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(empty))
	}

	ids := []string{"KL-MH-0040", "KL-MH-0041", "KL-MH-0042"}
	for _, id := range ids {
		m := &Migrant{ID: types.NewID(), MigrantID: id}
		if err := store.Create(ctx, m); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("Expected 3 migrants, got %d", len(all))
	}

	// Registration order is preserved
	for i, id := range ids {
		if all[i].MigrantID != id {
			t.Errorf("Expected migrant ID '%s' at position %d, got '%s'", id, i, all[i].MigrantID)
		}
	}
}
