package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jakesmtg/cardbox/pkg/application/services"
	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// PullSheetHeader is the column contract for pull sheets.
var PullSheetHeader = []string{"Box", "Name", "Quantity", "Condition", "Set", "Number"}

// ReceivingSheetHeader extends the pull-sheet contract with the card id
// and the computed resale price.
var ReceivingSheetHeader = []string{"Box", "Name", "Quantity", "Condition", "Set", "Number", "TCGplayer Id", "Price"}

// WritePullSheet writes the projected allocation groups as a CSV.
func WritePullSheet(filename string, groups []services.BoxGroup) error {
	return writeSheet(filename, PullSheetHeader, func(writer *csv.Writer) error {
		for _, group := range groups {
			for _, record := range group.Records {
				err := writer.Write([]string{
					group.Box,
					record.ProductName,
					strconv.FormatInt(int64(record.Quantity), 10),
					record.Condition,
					record.SetName,
					record.Number,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteReceivingSheet writes the projected receiving groups as a CSV.
func WriteReceivingSheet(filename string, groups []services.ReceivingBoxGroup) error {
	return writeSheet(filename, ReceivingSheetHeader, func(writer *csv.Writer) error {
		for _, group := range groups {
			for _, line := range group.Lines {
				err := writer.Write([]string{
					group.Box,
					line.ProductName,
					strconv.FormatInt(int64(line.Quantity), 10),
					line.Condition,
					line.SetName,
					line.Number,
					string(line.ID),
					line.Price.StringFixed(2),
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteBuylist writes buylist lines as the buyer's import CSV.
func WriteBuylist(filename string, lines []services.BuylistLine) error {
	return writeSheet(filename, []string{"title", "edition", "foil", "quantity"}, func(writer *csv.Writer) error {
		for _, line := range lines {
			err := writer.Write([]string{
				line.Title,
				line.Edition,
				line.Foil,
				strconv.FormatInt(int64(line.Quantity), 10),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSheet(filename string, header []string, body func(*csv.Writer) error) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := body(writer); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// PrintRunSummary prints the per-batch counts the way operators read
// them after a run.
func PrintRunSummary(summary entities.RunSummary) {
	fmt.Printf("Run %s\n", summary.BatchID)
	fmt.Printf("  matched rows:   %d\n", summary.Matched)
	fmt.Printf("  unmatched rows: %d\n", summary.Unmatched)
	fmt.Printf("  underflows:     %d\n", len(summary.Underflows))
	fmt.Printf("  shortfalls:     %d\n", len(summary.Shortfalls))

	for _, underflow := range summary.Underflows {
		fmt.Printf("  ! %s\n", underflow)
	}
	for _, shortfall := range summary.Shortfalls {
		fmt.Printf("  ! %s\n", shortfall)
	}
}
