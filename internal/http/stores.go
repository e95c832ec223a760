package http

import (
	"context"
	"time"

	"github.com/mrlokans/libreria/internal/auth"
	"github.com/mrlokans/libreria/internal/entities"
	"github.com/mrlokans/libreria/internal/services"
)

// This file consolidates the service interfaces used by HTTP controllers.
// Each controller depends only on the operations it calls.

// BookService is the book catalogue used by BooksController.
type BookService interface {
	Create(ctx context.Context, in services.BookInput) (*entities.Book, error)
	List(ctx context.Context, filter services.BookFilter, page services.Page) ([]entities.Book, error)
	Get(ctx context.Context, id uint) (*entities.Book, error)
	Update(ctx context.Context, id uint, patch services.BookPatch) (*entities.Book, error)
	Replace(ctx context.Context, id uint, in services.BookInput) (*entities.Book, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryService is used by CategoriesController.
type CategoryService interface {
	Create(ctx context.Context, in services.CategoryInput) (*entities.Category, error)
	List(ctx context.Context) ([]entities.Category, error)
	Get(ctx context.Context, id uint) (*entities.Category, error)
	ListBooks(ctx context.Context, id uint, page services.Page) ([]entities.Book, error)
	Update(ctx context.Context, id uint, patch services.CategoryPatch) (*entities.Category, error)
	Replace(ctx context.Context, id uint, in services.CategoryInput) (*entities.Category, error)
	Delete(ctx context.Context, id uint) error
}

// CartService is used by CartsController.
type CartService interface {
	Create(ctx context.Context, in services.CartInput) (*entities.Cart, error)
	List(ctx context.Context, page services.Page) ([]entities.Cart, error)
	Get(ctx context.Context, id uint) (*entities.Cart, error)
	GetByUser(ctx context.Context, userID uint) (*entities.Cart, error)
	Update(ctx context.Context, id uint, in services.CartUpdate) (*entities.Cart, error)
	Delete(ctx context.Context, id uint) error
}

// SaleService is used by SalesController.
type SaleService interface {
	Create(ctx context.Context, in services.SaleInput) (*entities.Sale, error)
	List(ctx context.Context, filter services.SaleFilter, page services.Page) ([]entities.Sale, error)
	Get(ctx context.Context, id uint) (*entities.Sale, error)
	Delete(ctx context.Context, id uint) error
}

// UserService is used by AuthController.
type UserService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, in auth.LoginInput) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// LoginLimiter throttles failed logins. A nil limiter disables throttling.
type LoginLimiter interface {
	Allow(ip, email string) (bool, time.Duration)
	RecordFailure(ip, email string) (bool, time.Duration)
	RecordSuccess(ip, email string)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
