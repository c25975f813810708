package http

import (
	"github.com/mrlokans/librarium/internal/audit"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store        CatalogStore
	AuditService *audit.Service
	AuditDB      *audit.Database

	// Library file location (for the health check)
	LibraryPath string

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
