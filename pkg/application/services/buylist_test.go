package services

import (
	"testing"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

func buylistRow(name, set, condition string, qty entities.Quantity) entities.ReceivingRow {
	return entities.ReceivingRow{
		ID:        "100",
		Condition: condition,
		Quantity:  qty,
		Entry: entities.CardEntry{
			ID:          "100",
			ProductName: name,
			SetName:     set,
			Condition:   condition,
		},
	}
}

func TestEdition(t *testing.T) {
	mapping := SetMapping{
		"Commander Legends": {"Commander Legends", "Commander Legends Variants"},
		"Alpha":             {"Limited Edition Alpha"},
	}

	tests := []struct {
		name        string
		setName     string
		productName string
		wantEdition string
		wantMapped  bool
	}{
		{"single edition", "Alpha", "Lightning Bolt", "Limited Edition Alpha", true},
		{"case-insensitive lookup", "alpha", "Lightning Bolt", "Limited Edition Alpha", true},
		{"plain name takes base edition", "Commander Legends", "Wheel of Fortune", "Commander Legends", true},
		{"parenthesized name takes variants", "Commander Legends", "Wheel of Fortune (Extended Art)", "Commander Legends Variants", true},
		{"unmapped set keeps its name", "Unknown Set", "Shock", "Unknown Set", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edition, mapped := mapping.Edition(tt.setName, tt.productName)
			if edition != tt.wantEdition {
				t.Errorf("Edition() = %q, want %q", edition, tt.wantEdition)
			}
			if mapped != tt.wantMapped {
				t.Errorf("mapped = %v, want %v", mapped, tt.wantMapped)
			}
		})
	}
}

func TestConvertToBuylist(t *testing.T) {
	mapping := SetMapping{"Alpha": {"Limited Edition Alpha"}}

	rows := []entities.ReceivingRow{
		buylistRow("Lightning Bolt", "Alpha", "Near Mint", 4),
		buylistRow("Shock", "Alpha", "Near Mint Foil", 2),
		buylistRow("", "Alpha", "Near Mint", 1),          // missing name: skipped
		buylistRow("Counterspell", "", "Near Mint", 1),   // missing set: skipped
		buylistRow("Dark Ritual", "Alpha", "Near Mint", 0), // no quantity: skipped
	}

	lines := ConvertToBuylist(rows, mapping)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	if lines[0].Title != "Lightning Bolt" || lines[0].Edition != "Limited Edition Alpha" {
		t.Errorf("line 0 = %q / %q, want Lightning Bolt / Limited Edition Alpha", lines[0].Title, lines[0].Edition)
	}
	if lines[0].Foil != "no" {
		t.Errorf("line 0 foil = %q, want no", lines[0].Foil)
	}
	if lines[1].Foil != "yes" {
		t.Errorf("line 1 foil = %q, want yes (condition marks foil)", lines[1].Foil)
	}
	if lines[1].Quantity != 2 {
		t.Errorf("line 1 quantity = %d, want 2", lines[1].Quantity)
	}
}
