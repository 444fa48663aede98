package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/json"
)

const exportCSV = `TCGplayer Id,Product Line,Set Name,Product Name,Number,Rarity,Condition,TCG Market Price,TCG Low Price,Total Quantity
100,Magic,Alpha,Lightning Bolt,161,R,Near Mint,1.50,0.90,15
200,Magic,Beta,Shock,162,C,Near Mint,0.10,0.05,25
300,Magic,Beta,Counterspell,54,C,Near Mint,0.80,0.60,0
`

const pullCSV = `Quantity,Product Name,Condition,Set,Number
2,Lightning Bolt,Near Mint,Alpha,161
1,Black Lotus,Near Mint,Alpha,232
9,Totals,,,
`

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

// Receive into empty ledgers, then plan and commit a pull against the
// resulting store ledger.
func TestReceiveThenPull(t *testing.T) {
	dir := t.TempDir()
	ledgerFile := filepath.Join(dir, "ledger.json")
	backlogFile := filepath.Join(dir, "backlog.json")
	inputFile := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(inputFile, []byte(exportCSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	receive := NewReceiveCommand(ReceiveConfig{
		LedgerFile:  ledgerFile,
		BacklogFile: backlogFile,
		InputFile:   inputFile,
		StoreBox:    "2",
		BacklogBox:  "50",
		MinQuantity: 10,
		MaxQuantity: 20,
		OutputDir:   dir,
		Init:        true,
	})
	if err := receive.Execute(context.Background()); err != nil {
		t.Fatalf("receive Execute() error = %v", err)
	}

	// Card 100: 15 received into the store box. Card 200: 20 to store,
	// 5 overflow to backlog. Card 300: zero quantity, skipped.
	store, err := json.NewStore(ledgerFile).Load()
	if err != nil {
		t.Fatalf("store ledger Load() error = %v", err)
	}
	if got := store.TotalQuantity("100", "Near Mint"); got != 15 {
		t.Errorf("store card 100 = %d, want 15", got)
	}
	if got := store.TotalQuantity("200", "Near Mint"); got != 20 {
		t.Errorf("store card 200 = %d, want 20", got)
	}
	if _, ok := store.Get("300"); ok {
		t.Error("zero-quantity card should not enter the ledger")
	}

	backlog, err := json.NewStore(backlogFile).Load()
	if err != nil {
		t.Fatalf("backlog ledger Load() error = %v", err)
	}
	if got := backlog.TotalQuantity("200", "Near Mint"); got != 5 {
		t.Errorf("backlog card 200 = %d, want overflow 5", got)
	}

	storeSheet := readSheet(t, filepath.Join(dir, "storePullSheet.csv"))
	if len(storeSheet) != 3 { // header + two store lines
		t.Errorf("store sheet rows = %d, want 3", len(storeSheet))
	}

	// Pull phase.
	pullFile := filepath.Join(dir, "pull.csv")
	if err := os.WriteFile(pullFile, []byte(pullCSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	pullSheet := filepath.Join(dir, "pullSheet.csv")

	pull := NewPullCommand(PullConfig{
		LedgerFile: ledgerFile,
		InputFile:  pullFile,
		OutputFile: pullSheet,
		TrimMode:   "pop-last",
		Commit:     true,
	})
	if err := pull.Execute(context.Background()); err != nil {
		t.Fatalf("pull Execute() error = %v", err)
	}

	sheet := readSheet(t, pullSheet)
	if len(sheet) != 2 { // header + the matched draw; Black Lotus is unmatched
		t.Fatalf("pull sheet rows = %d, want 2", len(sheet))
	}
	row := sheet[1]
	if row[0] != "2" || row[1] != "Lightning Bolt" || row[2] != "2" {
		t.Errorf("pull sheet row = %v, want box 2, Lightning Bolt, quantity 2", row)
	}

	committed, err := json.NewStore(ledgerFile).Load()
	if err != nil {
		t.Fatalf("committed ledger Load() error = %v", err)
	}
	if got := committed.TotalQuantity("100", "Near Mint"); got != 13 {
		t.Errorf("card 100 after commit = %d, want 13", got)
	}
}

func TestPullWithoutCommitLeavesLedgerUntouched(t *testing.T) {
	dir := t.TempDir()
	ledgerFile := filepath.Join(dir, "ledger.json")
	doc := `{"100": {"TCGplayer Id": "100", "Product Name": "Lightning Bolt", "Set Name": "Alpha", "Number": "161", "Condition": "Near Mint", "Boxes": {"2": {"Near Mint": 5}}}}`
	if err := os.WriteFile(ledgerFile, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	pullFile := filepath.Join(dir, "pull.csv")
	if err := os.WriteFile(pullFile, []byte(pullCSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	pull := NewPullCommand(PullConfig{
		LedgerFile: ledgerFile,
		InputFile:  pullFile,
		OutputFile: filepath.Join(dir, "pullSheet.csv"),
		TrimMode:   "pop-last",
		Commit:     false,
	})
	if err := pull.Execute(context.Background()); err != nil {
		t.Fatalf("pull Execute() error = %v", err)
	}

	ledger, err := json.NewStore(ledgerFile).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ledger.TotalQuantity("100", "Near Mint"); got != 5 {
		t.Errorf("ledger total after plan-only run = %d, want unchanged 5", got)
	}
}

func TestReceiveMissingLedgerWithoutInit(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(inputFile, []byte(exportCSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	receive := NewReceiveCommand(ReceiveConfig{
		LedgerFile:  filepath.Join(dir, "ledger.json"),
		BacklogFile: filepath.Join(dir, "backlog.json"),
		InputFile:   inputFile,
		StoreBox:    "2",
		BacklogBox:  "50",
		MinQuantity: 10,
		MaxQuantity: 20,
		OutputDir:   dir,
	})
	err := receive.Execute(context.Background())
	if err == nil {
		t.Fatal("receive without -init should fail on a missing ledger")
	}
	var loadErr *entities.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("error = %T, want *entities.LoadError", err)
	}
}
