package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/libreria/internal/auth"
	"github.com/mrlokans/libreria/internal/database"
	"github.com/mrlokans/libreria/internal/http"
	"github.com/mrlokans/libreria/internal/services"
)

// =============================================================================
// Services consumed by HTTP controllers
// =============================================================================

var _ http.BookService = (*services.BookService)(nil)
var _ http.CategoryService = (*services.CategoryService)(nil)
var _ http.CartService = (*services.CartService)(nil)
var _ http.SaleService = (*services.SaleService)(nil)
var _ http.UserService = (*auth.Service)(nil)
var _ http.LoginLimiter = (*auth.RateLimiter)(nil)

// =============================================================================
// Storage
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ services.Transactor = (*database.Database)(nil)
var _ auth.Transactor = (*database.Database)(nil)
