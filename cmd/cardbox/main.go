package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/config"
	"github.com/jakesmtg/cardbox/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "receive":
		err = runReceive(ctx, cfg, os.Args[2:])
	case "pull":
		err = runPull(ctx, cfg, os.Args[2:])
	case "serve":
		err = runServe(ctx, cfg, os.Args[2:])
	case "buylist":
		err = runBuylist(ctx, cfg, os.Args[2:])
	case "help", "-help", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		showUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReceive(ctx context.Context, cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("receive", flag.ExitOnError)
	var (
		ledgerFile  = flags.String("ledger", cfg.LedgerFile, "Path to the store ledger JSON document")
		backlogFile = flags.String("backlog", cfg.BacklogFile, "Path to the backlog ledger JSON document")
		inputFile   = flags.String("input", "", "Path to the receiving CSV")
		storeBox    = flags.String("store-box", cfg.StoreBox, "Box absorbing new store stock")
		backlogBox  = flags.String("backlog-box", cfg.BacklogBox, "Box absorbing overflow stock")
		minQuantity = flags.Int64("min", int64(cfg.MinQuantity), "Store total below which a card is restocked")
		maxQuantity = flags.Int64("max", int64(cfg.MaxQuantity), "Store total a restock tops up toward")
		outputDir   = flags.String("output", cfg.DataDir, "Directory for the receiving sheets")
		initLedgers = flags.Bool("init", false, "Treat absent ledger documents as empty (first run)")
		verbose     = flags.Bool("verbose", false, "Enable verbose output")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewReceiveCommand(commands.ReceiveConfig{
		LedgerFile:  *ledgerFile,
		BacklogFile: *backlogFile,
		InputFile:   *inputFile,
		StoreBox:    *storeBox,
		BacklogBox:  *backlogBox,
		MinQuantity: entities.Quantity(*minQuantity),
		MaxQuantity: entities.Quantity(*maxQuantity),
		OutputDir:   *outputDir,
		Init:        *initLedgers,
		Verbose:     *verbose,
	})
	return cmd.Execute(ctx)
}

func runPull(ctx context.Context, cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("pull", flag.ExitOnError)
	var (
		ledgerFile = flags.String("ledger", cfg.LedgerFile, "Path to the store ledger JSON document")
		inputFile  = flags.String("input", "", "Path to the pull list CSV")
		outputFile = flags.String("output", cfg.DataDir+"/pullSheet.csv", "Path for the generated pull sheet")
		trimMode   = flags.String("trim", "pop-last", "Pull list trim mode: pop-last, drop-first-two, none")
		commit     = flags.Bool("commit", false, "Apply the planned draws to the ledger and persist")
		verbose    = flags.Bool("verbose", false, "Enable verbose output")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewPullCommand(commands.PullConfig{
		LedgerFile: *ledgerFile,
		InputFile:  *inputFile,
		OutputFile: *outputFile,
		TrimMode:   *trimMode,
		Commit:     *commit,
		Verbose:    *verbose,
	})
	return cmd.Execute(ctx)
}

func runServe(ctx context.Context, cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		addr       = flags.String("addr", cfg.ListenAddr, "Listen address")
		catalogDir = flags.String("catalog", cfg.CatalogDir, "Directory holding the export CSV")
		exportDir  = flags.String("export", cfg.ExportDir, "Directory for generated receiving CSVs")
		cacheTTL   = flags.Duration("cache-ttl", 5*time.Minute, "Catalog cache lifetime")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewServeCommand(commands.ServeConfig{
		Addr:       *addr,
		CatalogDir: *catalogDir,
		ExportDir:  *exportDir,
		CacheTTL:   *cacheTTL,
	})
	return cmd.Execute(ctx)
}

func runBuylist(ctx context.Context, cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("buylist", flag.ExitOnError)
	var (
		inputFile   = flags.String("input", "", "Path to the export CSV to convert")
		mappingFile = flags.String("mapping", cfg.DataDir+"/invertedSetMapping.json", "Path to the inverted set mapping")
		outputFile  = flags.String("output", cfg.DataDir+"/processedCards.csv", "Path for the buylist CSV")
		verbose     = flags.Bool("verbose", false, "Enable verbose output")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewBuylistCommand(commands.BuylistConfig{
		InputFile:   *inputFile,
		MappingFile: *mappingFile,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	})
	return cmd.Execute(ctx)
}

func showUsage() {
	fmt.Printf(`cardbox - box inventory ledger and pull allocation

USAGE:
    cardbox <command> [flags]

COMMANDS:
    receive     Ingest a receiving CSV and route stock to store box or backlog
    pull        Resolve a pull list, plan per-box draws, write the pull sheet
    serve       Run the read-only catalog viewer
    buylist     Convert an export CSV into a buylist import CSV
    help        Show this help message

Run 'cardbox <command> -h' for command flags. Flag defaults come from the
environment (CARDBOX_*), optionally seeded from a .env file.

EXAMPLES:
    # First-ever run against empty ledgers
    cardbox receive -input data/add/export.csv -init -verbose

    # Plan a pull sheet, review it, then commit the draws
    cardbox pull -input data/pull/TCGplayer_PullSheet.csv
    cardbox pull -input data/pull/TCGplayer_PullSheet.csv -commit

    # Browse the catalog at http://localhost:3000
    cardbox serve
`)
}
