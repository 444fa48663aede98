package commands

import (
	"context"
	"time"

	cardboxhttp "github.com/jakesmtg/cardbox/pkg/interfaces/http"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Addr       string
	CatalogDir string
	ExportDir  string
	CacheTTL   time.Duration
}

// ServeCommand runs the read-only catalog viewer.
type ServeCommand struct {
	config ServeConfig
}

// NewServeCommand creates a serve command with the given configuration.
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute runs the viewer until the listener fails.
func (c *ServeCommand) Execute(ctx context.Context) error {
	server := cardboxhttp.NewServer(cardboxhttp.Config{
		Addr:       c.config.Addr,
		CatalogDir: c.config.CatalogDir,
		ExportDir:  c.config.ExportDir,
		CacheTTL:   c.config.CacheTTL,
	})
	return server.ListenAndServe()
}
