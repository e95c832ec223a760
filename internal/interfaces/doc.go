// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Service Interfaces (internal/http/stores.go)
//
//   - BookService, CategoryService: catalogue management
//   - CartService: one unpriced cart per user
//   - SaleService: finalised purchases
//   - UserService: registration, login and user lookup
//   - LoginLimiter: failed-login throttling (nil disables it)
//   - Pinger: database health for /health
//
// ## Storage Interfaces
//
//   - services.Transactor and auth.Transactor: run a function inside one
//     database transaction. *database.Database implements both.
//
// Repositories under internal/database/* are concrete types built from the
// *gorm.DB handed to a transaction; services never share one across calls.
//
// The checks in checks.go fail the build when an implementation drifts
// from its interface.
package interfaces
