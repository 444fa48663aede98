package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// Catalog is a raw view of an export CSV: the original header plus each
// row as column name -> value. The viewer serves it read-only and the
// inventory generator writes rows back out with the original columns
// preserved.
type Catalog struct {
	Header []string
	Rows   []map[string]string
}

// FindExportCSV returns the first CSV file in dir, sorted by name.
func FindExportCSV(dir string) (string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return "", &entities.LoadError{Path: dir, Err: err}
	}

	var names []string
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() && strings.HasSuffix(strings.ToLower(dirEntry.Name()), ".csv") {
			names = append(names, dirEntry.Name())
		}
	}
	if len(names) == 0 {
		return "", &entities.LoadError{Path: dir, Err: fmt.Errorf("no CSV file found")}
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// LoadCatalog reads a full export CSV preserving its column set.
func (l *Loader) LoadCatalog(filename string) (*Catalog, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, &entities.LoadError{Path: filename, Err: fmt.Errorf("export CSV has no header row")}
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Catalog{Header: header, Rows: rows}, nil
}

// WriteCatalog writes rows using the catalog's original header order.
func WriteCatalog(filename string, header []string, rows []map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, name := range header {
			record[i] = row[name]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
