package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// Loader handles loading ledger inputs from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadReceivingRows loads a receiving batch from an export CSV. Columns
// are resolved by header name so the export's column order does not
// matter. The quantity column may be named "Total Quantity" or
// "Add to Quantity". Rows without a positive quantity are skipped,
// matching the export's habit of listing the full catalog.
func (l *Loader) LoadReceivingRows(filename string) ([]entities.ReceivingRow, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("receiving CSV must have header and at least one data row")}
	}

	columns := indexHeader(records[0])
	idCol, ok := columns["tcgplayer id"]
	if !ok {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("receiving CSV missing %q column", "TCGplayer Id")}
	}
	conditionCol, ok := columns["condition"]
	if !ok {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("receiving CSV missing %q column", "Condition")}
	}
	quantityCol, ok := columns["total quantity"]
	if !ok {
		quantityCol, ok = columns["add to quantity"]
	}
	if !ok {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("receiving CSV missing quantity column")}
	}

	field := func(record []string, name string) string {
		col, ok := columns[name]
		if !ok || col >= len(record) {
			return ""
		}
		return record[col]
	}

	// The reader accepts ragged rows, so the required columns need an
	// explicit bound: a row too short for them is malformed input, not
	// a panic.
	requiredCol := idCol
	if conditionCol > requiredCol {
		requiredCol = conditionCol
	}
	if quantityCol > requiredCol {
		requiredCol = quantityCol
	}

	var rows []entities.ReceivingRow
	for i, record := range records[1:] {
		if len(record) <= requiredCol {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("row %d: has %d columns, required columns need %d", i+2, len(record), requiredCol+1)}
		}
		quantity, err := parseQuantity(record[quantityCol])
		if err != nil {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("row %d: %w", i+2, err)}
		}
		if quantity <= 0 {
			continue
		}

		id := entities.CardID(strings.TrimSpace(record[idCol]))
		if id == "" {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("row %d: empty card id", i+2)}
		}

		condition := record[conditionCol]
		rows = append(rows, entities.ReceivingRow{
			ID:        id,
			Condition: condition,
			Quantity:  quantity,
			Entry: entities.CardEntry{
				ID:          id,
				ProductLine: field(record, "product line"),
				SetName:     field(record, "set name"),
				ProductName: field(record, "product name"),
				Title:       field(record, "title"),
				Number:      field(record, "number"),
				Rarity:      field(record, "rarity"),
				Condition:   condition,
			},
			MarketPrice: parsePrice(field(record, "tcg market price")),
			LowPrice:    parsePrice(field(record, "tcg low price")),
		})
	}

	return rows, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &entities.LoadError{Path: filename, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // exports pad trailing columns inconsistently
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &entities.LoadError{Path: filename, Err: err}
	}
	return records, nil
}

// indexHeader maps normalized column names to positions.
func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func parseQuantity(s string) (entities.Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity: %q", s)
	}
	return entities.Quantity(n), nil
}

// parsePrice is tolerant: exports leave price cells blank or dirty, and
// a missing price must not fail the batch.
func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return price
}
