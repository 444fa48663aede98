package memory

import (
	"reflect"
	"testing"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

func TestUpsertBoxQuantityCreatesFromTemplate(t *testing.T) {
	ledger := NewLedger()
	template := &entities.CardEntry{
		ID:          "100",
		ProductName: "Lightning Bolt",
		SetName:     "Alpha",
		Rarity:      "R",
	}

	got, clamped := ledger.UpsertBoxQuantity("100", "2", "Near Mint", 5, template)
	if clamped {
		t.Error("positive delta on new entry should not clamp")
	}
	if got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}

	entry, ok := ledger.Get("100")
	if !ok {
		t.Fatal("entry should exist after upsert")
	}
	if entry.ProductName != "Lightning Bolt" {
		t.Errorf("ProductName = %q, want %q", entry.ProductName, "Lightning Bolt")
	}
	if entry == template {
		t.Error("ledger should hold a copy of the template, not the template itself")
	}
}

func TestUpsertBoxQuantityIncrements(t *testing.T) {
	ledger := NewLedger()
	ledger.UpsertBoxQuantity("100", "2", "Near Mint", 3, nil)
	got, clamped := ledger.UpsertBoxQuantity("100", "2", "Near Mint", 4, nil)

	if clamped {
		t.Error("increment should not clamp")
	}
	if got != 7 {
		t.Errorf("quantity = %d, want 7", got)
	}
}

func TestUpsertBoxQuantityClampsUnderflow(t *testing.T) {
	ledger := NewLedger()
	ledger.UpsertBoxQuantity("100", "2", "Near Mint", 3, nil)

	got, clamped := ledger.UpsertBoxQuantity("100", "2", "Near Mint", -5, nil)
	if !clamped {
		t.Error("decrement below zero should report a clamp")
	}
	if got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}

	// Stored state is the clamped value, never negative.
	entry, _ := ledger.Get("100")
	if entry.Boxes["2"]["Near Mint"] != 0 {
		t.Errorf("stored quantity = %d, want 0", entry.Boxes["2"]["Near Mint"])
	}
}

func TestUpsertBoxQuantitySeparatesConditions(t *testing.T) {
	ledger := NewLedger()
	ledger.UpsertBoxQuantity("100", "2", "Near Mint", 3, nil)
	ledger.UpsertBoxQuantity("100", "2", "Near Mint Foil", 2, nil)

	if got := ledger.TotalQuantity("100", "Near Mint"); got != 3 {
		t.Errorf("TotalQuantity(Near Mint) = %d, want 3", got)
	}
	if got := ledger.TotalQuantity("100", "Near Mint Foil"); got != 2 {
		t.Errorf("TotalQuantity(Near Mint Foil) = %d, want 2", got)
	}
}

func TestTotalQuantityUnknownID(t *testing.T) {
	ledger := NewLedger()
	if got := ledger.TotalQuantity("missing", "Near Mint"); got != 0 {
		t.Errorf("TotalQuantity for unknown id = %d, want 0", got)
	}
}

func TestIDsSorted(t *testing.T) {
	ledger := NewLedger()
	for _, id := range []entities.CardID{"300", "100", "200"} {
		ledger.UpsertBoxQuantity(id, "2", "Near Mint", 1, nil)
	}

	got := ledger.IDs()
	want := []entities.CardID{"100", "200", "300"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if ledger.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ledger.Len())
	}
}

func TestFromEntriesNil(t *testing.T) {
	ledger := FromEntries(nil)
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ledger.Len())
	}
	ledger.UpsertBoxQuantity("100", "2", "Near Mint", 1, nil)
	if ledger.Len() != 1 {
		t.Errorf("Len() after upsert = %d, want 1", ledger.Len())
	}
}
