package commands

import (
	"context"
	"fmt"

	"github.com/jakesmtg/cardbox/pkg/application/services"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/csv"
	"github.com/jakesmtg/cardbox/pkg/interfaces/cli/output"
)

// BuylistConfig holds configuration for the buylist command.
type BuylistConfig struct {
	InputFile   string
	MappingFile string
	OutputFile  string
	Verbose     bool
}

// BuylistCommand converts an export CSV into the buyer's import format
// using the inverted set-name mapping.
type BuylistCommand struct {
	config BuylistConfig
}

// NewBuylistCommand creates a buylist command with the given configuration.
func NewBuylistCommand(config BuylistConfig) *BuylistCommand {
	return &BuylistCommand{config: config}
}

// Execute runs the buylist conversion.
func (c *BuylistCommand) Execute(ctx context.Context) error {
	if c.config.InputFile == "" {
		return fmt.Errorf("buylist input file is required")
	}

	mapping, err := services.LoadSetMapping(c.config.MappingFile)
	if err != nil {
		return err
	}

	rows, err := csv.NewLoader().LoadReceivingRows(c.config.InputFile)
	if err != nil {
		return err
	}

	lines := services.ConvertToBuylist(rows, mapping)
	if err := output.WriteBuylist(c.config.OutputFile, lines); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ %d buylist lines -> %s (%d source rows)\n",
			len(lines), c.config.OutputFile, len(rows))
	}

	return nil
}
