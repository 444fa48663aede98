package entities

import (
	"reflect"
	"testing"
)

func TestNewCardEntry(t *testing.T) {
	tests := []struct {
		name        string
		id          CardID
		productName string
		wantErr     bool
	}{
		{
			name:        "valid entry",
			id:          "12345",
			productName: "Lightning Bolt",
			wantErr:     false,
		},
		{
			name:        "empty id",
			id:          "",
			productName: "Lightning Bolt",
			wantErr:     true,
		},
		{
			name:        "empty product name",
			id:          "12345",
			productName: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewCardEntry(tt.id, "Magic", "Alpha", tt.productName, "", "161", "R", "Near Mint")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCardEntry() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if entry.ID != tt.id {
				t.Errorf("ID = %v, want %v", entry.ID, tt.id)
			}
			if entry.Boxes == nil {
				t.Error("Boxes map should be initialized")
			}
		})
	}
}

func TestCardEntryClone(t *testing.T) {
	entry, err := NewCardEntry("100", "Magic", "Alpha", "Lightning Bolt", "", "161", "R", "Near Mint")
	if err != nil {
		t.Fatalf("NewCardEntry() error = %v", err)
	}
	entry.Boxes["2"] = map[string]Quantity{"Near Mint": 4}

	clone := entry.Clone()
	clone.Boxes["2"]["Near Mint"] = 9
	clone.Boxes["50"] = map[string]Quantity{"Near Mint": 1}

	if entry.Boxes["2"]["Near Mint"] != 4 {
		t.Errorf("mutating clone changed original: got %d, want 4", entry.Boxes["2"]["Near Mint"])
	}
	if _, ok := entry.Boxes["50"]; ok {
		t.Error("mutating clone added box to original")
	}
}

func TestCardEntryTotalQuantity(t *testing.T) {
	entry := &CardEntry{
		ID: "100",
		Boxes: map[string]map[string]Quantity{
			"2":  {"Near Mint": 3, "Lightly Played": 2},
			"7":  {"Near Mint": 5},
			"50": {"Near Mint": 0},
		},
	}

	if got := entry.TotalQuantity("Near Mint"); got != 8 {
		t.Errorf("TotalQuantity(Near Mint) = %d, want 8", got)
	}
	if got := entry.TotalQuantity("Lightly Played"); got != 2 {
		t.Errorf("TotalQuantity(Lightly Played) = %d, want 2", got)
	}
	if got := entry.TotalQuantity("Damaged"); got != 0 {
		t.Errorf("TotalQuantity(Damaged) = %d, want 0", got)
	}
}

func TestCardEntryBoxQuantities(t *testing.T) {
	entry := &CardEntry{
		ID: "100",
		Boxes: map[string]map[string]Quantity{
			"2":  {"Near Mint": 3},
			"7":  {"Near Mint": 0},
			"50": {"Lightly Played": 2},
		},
	}

	got := entry.BoxQuantities("Near Mint")
	want := map[string]Quantity{"2": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoxQuantities(Near Mint) = %v, want %v", got, want)
	}
}

func TestCardEntryBoxIDs(t *testing.T) {
	entry := &CardEntry{
		ID: "100",
		Boxes: map[string]map[string]Quantity{
			"7": {}, "2": {}, "50": {},
		},
	}

	got := entry.BoxIDs()
	want := []string{"2", "50", "7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoxIDs() = %v, want %v", got, want)
	}
}
