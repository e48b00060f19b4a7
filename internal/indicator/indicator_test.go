package indicator

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreUpsertInsertsNew(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ind, err := store.Upsert(ctx, "Health camps conducted", 12)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if ind.ID.IsZero() {
		t.Error("Indicator ID should not be zero")
	}

	if ind.Name != "Health camps conducted" {
		t.Errorf("Expected name 'Health camps conducted', got '%s'", ind.Name)
	}

	if ind.Value != 12 {
		t.Errorf("Expected value 12, got %v", ind.Value)
	}

	if ind.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set")
	}
}

func TestMemoryStoreUpsertReplacesValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, err := store.Upsert(ctx, "Coverage", 40.5)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	second, err := store.Upsert(ctx, "Coverage", 66.67)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("Upsert on an existing name should keep the same row identity")
	}

	if second.Value != 66.67 {
		t.Errorf("Expected value 66.67, got %v", second.Value)
	}

	if !second.LastUpdated.After(first.LastUpdated) {
		t.Error("LastUpdated should advance on re-upsert")
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 indicator after two upserts of same name, got %d", len(all))
	}
	if all[0].Value != 66.67 {
		t.Errorf("Expected stored value 66.67, got %v", all[0].Value)
	}
}

func TestMemoryStoreListOrderedByName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	names := []string{"Zinc supplements", "Anemia screenings", "Migrant health coverage (%) - SDG3"}
	for i, name := range names {
		if _, err := store.Upsert(ctx, name, float64(i)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("Expected 3 indicators, got %d", len(all))
	}

	expected := []string{"Anemia screenings", "Migrant health coverage (%) - SDG3", "Zinc supplements"}
	for i, name := range expected {
		if all[i].Name != name {
			t.Errorf("Expected name '%s' at position %d, got '%s'", name, i, all[i].Name)
		}
	}
}

func TestMemoryStoreListEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty list, got %d indicators", len(all))
	}
}
