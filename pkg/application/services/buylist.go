package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// BuylistLine is one row of a buylist export: a card named the way the
// buyer's catalog names it.
type BuylistLine struct {
	Title    string
	Edition  string
	Foil     string
	Quantity entities.Quantity
}

// SetMapping maps an export set name to the buyer's edition names. A
// set may map to several editions (base plus "Variants").
type SetMapping map[string][]string

// LoadSetMapping reads an inverted set-name mapping document.
func LoadSetMapping(path string) (SetMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.LoadError{Path: path, Err: err}
	}
	var mapping SetMapping
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, &entities.LoadError{Path: path, Err: fmt.Errorf("malformed set mapping: %w", err)}
	}
	return mapping, nil
}

// Edition picks the buyer's edition for a set name. Lookup is exact,
// then case-insensitive. When a set maps to several editions, product
// names containing "(" take the "Variants" edition and everything else
// takes the non-Variants one, falling back to the first listed.
func (m SetMapping) Edition(setName, productName string) (string, bool) {
	editions, ok := m[setName]
	if !ok {
		for mapped, candidates := range m {
			if strings.EqualFold(mapped, setName) {
				editions = candidates
				ok = true
				break
			}
		}
	}
	if !ok || len(editions) == 0 {
		return setName, false
	}
	if len(editions) == 1 {
		return editions[0], true
	}

	wantVariants := strings.Contains(productName, "(")
	for _, edition := range editions {
		if strings.Contains(edition, "Variants") == wantVariants {
			return edition, true
		}
	}
	return editions[0], true
}

// ConvertToBuylist turns receiving rows into buylist lines using the
// set mapping. Rows missing a product name or set name are skipped with
// a notice; an unmapped set keeps its export name.
func ConvertToBuylist(rows []entities.ReceivingRow, mapping SetMapping) []BuylistLine {
	lines := make([]BuylistLine, 0, len(rows))
	for _, row := range rows {
		if row.Entry.ProductName == "" || row.Entry.SetName == "" || row.Quantity <= 0 {
			log.Printf("buylist: skipping row with missing data (id=%s)", row.ID)
			continue
		}

		edition, mapped := mapping.Edition(row.Entry.SetName, row.Entry.ProductName)
		if !mapped {
			log.Printf("buylist: no mapping found for set %q", row.Entry.SetName)
		}

		lines = append(lines, BuylistLine{
			Title:    row.Entry.ProductName,
			Edition:  edition,
			Foil:     foilFlag(row.Condition),
			Quantity: row.Quantity,
		})
	}
	return lines
}

// foilFlag reports "yes" when the condition text marks a foil variant.
func foilFlag(condition string) string {
	if strings.Contains(strings.ToLower(condition), "foil") {
		return "yes"
	}
	return "no"
}
