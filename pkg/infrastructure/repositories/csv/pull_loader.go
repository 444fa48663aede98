package csv

import (
	"fmt"
	"strings"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// TrimMode selects how to strip a pull-list export's non-data rows.
type TrimMode int

const (
	// TrimTrailingSummary drops the final row (a totals line).
	TrimTrailingSummary TrimMode = iota
	// TrimLeadingBanner drops the first two rows (export banner).
	TrimLeadingBanner
	// TrimNone takes the file as-is.
	TrimNone
)

// String returns the trim mode's name.
func (m TrimMode) String() string {
	switch m {
	case TrimTrailingSummary:
		return "TrimTrailingSummary"
	case TrimLeadingBanner:
		return "TrimLeadingBanner"
	case TrimNone:
		return "TrimNone"
	default:
		return "Unknown"
	}
}

// ParseTrimMode parses the CLI spelling of a trim mode.
func ParseTrimMode(s string) (TrimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pop-last", "summary":
		return TrimTrailingSummary, nil
	case "drop-first-two", "banner":
		return TrimLeadingBanner, nil
	case "none":
		return TrimNone, nil
	default:
		return TrimNone, fmt.Errorf("invalid trim mode: %s (expected: pop-last, drop-first-two, or none)", s)
	}
}

// LoadPullRows loads a pull list. Pull lists carry no stable id; rows
// are matched later by their descriptive fields. The trim mode strips
// the export's banner or summary rows before parsing.
func (l *Loader) LoadPullRows(filename string, mode TrimMode) ([]entities.PullRow, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}

	offset := 1 // rows preceding the first data row in the source file
	switch mode {
	case TrimTrailingSummary:
		if len(records) < 2 {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("pull list too short to hold a summary row")}
		}
		records = records[:len(records)-1]
	case TrimLeadingBanner:
		if len(records) < 3 {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("pull list too short to hold banner rows")}
		}
		records = records[2:]
		offset = 3
	}

	if len(records) < 1 {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("pull list has no header row")}
	}

	columns := indexHeader(records[0])
	for _, required := range []string{"product name", "condition", "quantity"} {
		if _, ok := columns[required]; !ok {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("pull list missing %q column", required)}
		}
	}

	field := func(record []string, name string) string {
		col, ok := columns[name]
		if !ok || col >= len(record) {
			return ""
		}
		return record[col]
	}

	var rows []entities.PullRow
	for i, record := range records[1:] {
		quantity, err := parseQuantity(field(record, "quantity"))
		if err != nil {
			return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("row %d: %w", i+offset+1, err)}
		}
		rows = append(rows, entities.PullRow{
			ProductName: field(record, "product name"),
			Condition:   field(record, "condition"),
			SetName:     field(record, "set"),
			Number:      field(record, "number"),
			Quantity:    quantity,
			Line:        i + offset + 1,
		})
	}

	return rows, nil
}
