package refdata

import "github.com/careerhq/attribute-engine/pkg/logger"

// Option configures a FileCatalog.
type Option func(*FileCatalog)

// WithLogger sets the logger used by the catalog.
func WithLogger(log logger.Logger) Option {
	return func(c *FileCatalog) {
		if log != nil {
			c.log = log
		}
	}
}
