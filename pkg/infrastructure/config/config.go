package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/jakesmtg/cardbox/pkg/domain/entities"
)

// Config holds the defaults CLI flags fall back to. Values come from
// the environment, optionally seeded from a .env file in the working
// directory.
type Config struct {
	DataDir     string
	LedgerFile  string
	BacklogFile string
	StoreBox    string
	BacklogBox  string
	MinQuantity entities.Quantity
	MaxQuantity entities.Quantity
	ListenAddr  string
	CatalogDir  string
	ExportDir   string
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicitly set variables win over it.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("CARDBOX_DATA_DIR", "data")

	return Config{
		DataDir:     dataDir,
		LedgerFile:  getenv("CARDBOX_LEDGER_FILE", dataDir+"/ledger.json"),
		BacklogFile: getenv("CARDBOX_BACKLOG_FILE", dataDir+"/backlog.json"),
		StoreBox:    getenv("CARDBOX_STORE_BOX", "2"),
		BacklogBox:  getenv("CARDBOX_BACKLOG_BOX", "50"),
		MinQuantity: getenvQuantity("CARDBOX_MIN_QUANTITY", 10),
		MaxQuantity: getenvQuantity("CARDBOX_MAX_QUANTITY", 20),
		ListenAddr:  getenv("CARDBOX_LISTEN_ADDR", ":3000"),
		CatalogDir:  getenv("CARDBOX_CATALOG_DIR", dataDir+"/export"),
		ExportDir:   getenv("CARDBOX_EXPORT_DIR", dataDir+"/add"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvQuantity(key string, fallback entities.Quantity) entities.Quantity {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return entities.Quantity(n)
}
