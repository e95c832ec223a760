package http

import "github.com/mrlokans/libreria/internal/config"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books      BookService
	Categories CategoryService
	Carts      CartService
	Sales      SaleService
	Users      UserService
	Database   Pinger

	// Login throttling (optional)
	LoginLimiter LoginLimiter

	// Single browser origin allowed by CORS; empty disables CORS headers
	CORSOrigin string

	// Reject every write with 403
	ReadOnly bool

	Pagination        config.Pagination
	MinPasswordLength int

	// Application info
	Version string
}
