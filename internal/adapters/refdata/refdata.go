// Package refdata loads the occupational element reference tables the
// engine scores against. Tables are keyed by occupation code and held in
// memory for the lifetime of the process; the data set is read-only.
package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/pkg/logger"
)

// Catalog resolves an occupation code to its element table.
type Catalog interface {
	// Elements returns the element table for the occupation code, or
	// ErrOccupationNotFound when the code is not in the data set.
	Elements(occupationCode string) ([]model.OccupationElement, error)

	// Occupations returns the number of occupation codes loaded.
	Occupations() int
}

// FileCatalog is an in-memory Catalog backed by a JSON file.
type FileCatalog struct {
	mu     sync.RWMutex
	tables map[string][]model.OccupationElement
	log    logger.Logger
}

// occupationRecord is the on-disk shape of one occupation entry.
type occupationRecord struct {
	OccupationCode string                    `json:"occupation_code"`
	Title          string                    `json:"title,omitempty"`
	Elements       []model.OccupationElement `json:"elements"`
}

// NewFileCatalog loads the occupation data file at path. An empty path
// yields an empty catalog; lookups then fall through to the caller's
// no-elements handling.
func NewFileCatalog(ctx context.Context, path string, opts ...Option) (*FileCatalog, error) {
	c := &FileCatalog{
		tables: make(map[string][]model.OccupationElement),
		log:    logger.Get().Named("refdata"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if path == "" {
		c.log.Warn(ctx, "no occupation data path configured, starting with empty catalog")
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}
	defer f.Close()

	if err := c.load(f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadData, path, err)
	}

	c.log.Info(ctx, "occupation data loaded",
		logger.String("path", path),
		logger.Int("occupations", c.Occupations()))

	return c, nil
}

func (c *FileCatalog) load(r io.Reader) error {
	var records []occupationRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range records {
		if rec.OccupationCode == "" {
			return ErrMissingOccupationCode
		}
		c.tables[rec.OccupationCode] = rec.Elements
	}
	return nil
}

// Elements implements Catalog.
func (c *FileCatalog) Elements(occupationCode string) ([]model.OccupationElement, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	elements, ok := c.tables[occupationCode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, occupationCode)
	}
	return elements, nil
}

// Occupations implements Catalog.
func (c *FileCatalog) Occupations() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Put inserts or replaces the element table for an occupation code. Used
// by tests and by callers that source tables from somewhere other than
// the data file.
func (c *FileCatalog) Put(occupationCode string, elements []model.OccupationElement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[occupationCode] = elements
}
