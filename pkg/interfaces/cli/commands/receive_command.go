package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jakesmtg/cardbox/pkg/application/services"
	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/csv"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/json"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/memory"
	"github.com/jakesmtg/cardbox/pkg/interfaces/cli/output"
)

// ReceiveConfig holds configuration for the receive command.
type ReceiveConfig struct {
	LedgerFile  string
	BacklogFile string
	InputFile   string
	StoreBox    string
	BacklogBox  string
	MinQuantity entities.Quantity
	MaxQuantity entities.Quantity
	OutputDir   string
	Init        bool
	Verbose     bool
}

// ReceiveCommand ingests a receiving CSV, routes each row to the store
// box or the backlog under the capacity thresholds, writes both
// receiving sheets, and persists both ledgers.
type ReceiveCommand struct {
	config ReceiveConfig
}

// NewReceiveCommand creates a receive command with the given configuration.
func NewReceiveCommand(config ReceiveConfig) *ReceiveCommand {
	return &ReceiveCommand{config: config}
}

// Execute runs the receive command.
func (c *ReceiveCommand) Execute(ctx context.Context) error {
	if c.config.InputFile == "" {
		return fmt.Errorf("receiving input file is required")
	}

	router, err := services.NewReceivingRouter(services.ReceivingPolicy{
		StoreBox:    c.config.StoreBox,
		BacklogBox:  c.config.BacklogBox,
		MinQuantity: c.config.MinQuantity,
		MaxQuantity: c.config.MaxQuantity,
	})
	if err != nil {
		return err
	}

	store, storeLedger, err := c.loadLedger(c.config.LedgerFile)
	if err != nil {
		return err
	}
	backlog, backlogLedger, err := c.loadLedger(c.config.BacklogFile)
	if err != nil {
		return err
	}

	rows, err := csv.NewLoader().LoadReceivingRows(c.config.InputFile)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loaded %d receiving rows from %s\n", len(rows), c.config.InputFile)
		fmt.Printf("   Store ledger: %d cards, backlog ledger: %d cards\n",
			storeLedger.Len(), backlogLedger.Len())
	}

	result := router.Route(storeLedger, backlogLedger, rows)

	storeSheet := filepath.Join(c.config.OutputDir, "storePullSheet.csv")
	if err := output.WriteReceivingSheet(storeSheet, services.ProjectReceivingLines(result.StoreLines)); err != nil {
		return err
	}
	backlogSheet := filepath.Join(c.config.OutputDir, "backlogSheet.csv")
	if err := output.WriteReceivingSheet(backlogSheet, services.ProjectReceivingLines(result.BacklogLines)); err != nil {
		return err
	}

	// All rows are routed in memory before either document is replaced;
	// a failure above leaves both ledgers untouched on disk.
	if err := store.Persist(storeLedger); err != nil {
		return err
	}
	if err := backlog.Persist(backlogLedger); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ %d store lines -> %s\n", len(result.StoreLines), storeSheet)
		fmt.Printf("✅ %d backlog lines -> %s\n", len(result.BacklogLines), backlogSheet)
	}

	output.PrintRunSummary(entities.RunSummary{
		BatchID: uuid.NewString(),
		Matched: len(rows),
	})

	return nil
}

// loadLedger loads one ledger document. An absent document is an error
// unless -init was given: treating a missing ledger as empty is an
// explicit first-run decision, never a silent default.
func (c *ReceiveCommand) loadLedger(path string) (*json.Store, *memory.Ledger, error) {
	store := json.NewStore(path)
	if c.config.Init {
		ledger, err := store.LoadOrInit()
		return store, ledger, err
	}
	ledger, err := store.Load()
	return store, ledger, err
}
