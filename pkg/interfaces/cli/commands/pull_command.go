package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jakesmtg/cardbox/pkg/application/services"
	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	domainservices "github.com/jakesmtg/cardbox/pkg/domain/services"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/csv"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/json"
	"github.com/jakesmtg/cardbox/pkg/interfaces/cli/output"
)

// PullConfig holds configuration for the pull command.
type PullConfig struct {
	LedgerFile string
	InputFile  string
	OutputFile string
	TrimMode   string
	Commit     bool
	Verbose    bool
}

// PullCommand resolves a pull list against the store ledger, plans the
// per-box draws, and writes the pull sheet. The plan only mutates the
// ledger when -commit is given, so it can be reviewed first.
type PullCommand struct {
	config PullConfig
}

// NewPullCommand creates a pull command with the given configuration.
func NewPullCommand(config PullConfig) *PullCommand {
	return &PullCommand{config: config}
}

// Execute runs the pull command.
func (c *PullCommand) Execute(ctx context.Context) error {
	if c.config.InputFile == "" {
		return fmt.Errorf("pull list input file is required")
	}

	mode, err := csv.ParseTrimMode(c.config.TrimMode)
	if err != nil {
		return err
	}

	store := json.NewStore(c.config.LedgerFile)
	ledger, err := store.Load()
	if err != nil {
		return err
	}

	rows, err := csv.NewLoader().LoadPullRows(c.config.InputFile, mode)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loaded %d pull rows from %s (%s)\n", len(rows), c.config.InputFile, mode)
	}

	matcher := domainservices.NewMatcher(nil)
	requests, unmatched := matcher.Resolve(rows, ledger)
	for _, row := range unmatched {
		log.Printf("card not found: line %d: %q | %q | %q | %q",
			row.Line, row.ProductName, row.Condition, row.SetName, row.Number)
	}

	allocator := services.NewAllocator()
	batch := allocator.AllocateBatch(ledger, requests)

	if err := output.WritePullSheet(c.config.OutputFile, services.ProjectAllocations(batch.Records)); err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Printf("✅ %d draw records -> %s\n", len(batch.Records), c.config.OutputFile)
	}

	summary := entities.RunSummary{
		BatchID:    uuid.NewString(),
		Matched:    len(requests),
		Unmatched:  len(unmatched),
		Shortfalls: batch.Shortfalls,
	}

	if c.config.Commit {
		summary.Underflows = allocator.Commit(ledger, batch.Records)
		if err := store.Persist(ledger); err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("✅ Committed %d draws to %s\n", len(batch.Records), c.config.LedgerFile)
		}
	}

	output.PrintRunSummary(summary)
	return nil
}
