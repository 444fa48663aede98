package http

import (
	"sync"
	"time"

	csvrepo "github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/csv"
)

// catalogCache parses the export CSV on demand and keeps it for the
// configured TTL, so browsing does not re-read the file per request.
type catalogCache struct {
	dir    string
	ttl    time.Duration
	loader *csvrepo.Loader

	mu       sync.Mutex
	catalog  *csvrepo.Catalog
	loadedAt time.Time
}

func newCatalogCache(dir string, ttl time.Duration) *catalogCache {
	return &catalogCache{
		dir:    dir,
		ttl:    ttl,
		loader: csvrepo.NewLoader(),
	}
}

func (c *catalogCache) get() (*csvrepo.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil && time.Since(c.loadedAt) < c.ttl {
		return c.catalog, nil
	}

	filename, err := csvrepo.FindExportCSV(c.dir)
	if err != nil {
		return nil, err
	}
	catalog, err := c.loader.LoadCatalog(filename)
	if err != nil {
		return nil, err
	}

	c.catalog = catalog
	c.loadedAt = time.Now()
	return catalog, nil
}
