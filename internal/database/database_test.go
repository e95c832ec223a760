package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, PasswordHash: "x", Name: "Test", RegisteredAt: time.Now()}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: "A", Publisher: "P", Price: 10, AvailableQuantity: 1}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestDatabaseInitialization(t *testing.T) {
	db := setupTestDB(t)

	tables, err := db.Tables()
	require.NoError(t, err)
	for _, name := range []string{"users", "books", "categories", "carts", "sales", "book_categories", "cart_books", "sale_books"} {
		assert.Contains(t, tables, name)
	}

	assert.NoError(t, db.Ping(context.Background()))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", dsn("a.db"))
	assert.Equal(t, "file:a.db?cache=shared&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", dsn("file:a.db?cache=shared"))
}

func TestForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	t.Run("deleting a book cascades to cart memberships", func(t *testing.T) {
		user := seedUser(t, db.DB, "cart@example.com")
		book := seedBook(t, db.DB, "Cascade")
		cart := &entities.Cart{UserID: user.ID}
		require.NoError(t, db.DB.Omit("User").Create(cart).Error)
		require.NoError(t, db.DB.Omit("Cart", "Book").Create(&entities.CartBook{CartID: cart.ID, BookID: book.ID}).Error)

		require.NoError(t, db.DB.Delete(&entities.Book{}, book.ID).Error)

		var count int64
		db.DB.Model(&entities.CartBook{}).Where("cart_id = ?", cart.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("a sold book cannot be deleted", func(t *testing.T) {
		user := seedUser(t, db.DB, "sale@example.com")
		book := seedBook(t, db.DB, "Sold")
		sale := &entities.Sale{UserID: user.ID, Total: 10, Date: time.Now(), PaymentMethod: "efectivo"}
		require.NoError(t, db.DB.Omit("User").Create(sale).Error)
		require.NoError(t, db.DB.Omit("Sale", "Book").Create(&entities.SaleBook{SaleID: sale.ID, BookID: book.ID}).Error)

		err := db.DB.Delete(&entities.Book{}, book.ID).Error
		assert.Error(t, err)
	})

	t.Run("join rows must reference existing records", func(t *testing.T) {
		err := db.DB.Omit("Book", "Category").Create(&entities.BookCategory{BookID: 9999, CategoryID: 9999}).Error
		assert.Error(t, err)
	})
}

func TestTransaction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			seedBook(t, tx, "Committed")
			return nil
		})
		require.NoError(t, err)

		var count int64
		db.DB.Model(&entities.Book{}).Where("title = ?", "Committed").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.Transaction(ctx, func(tx *gorm.DB) error {
			seedBook(t, tx, "RolledBack")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		db.DB.Model(&entities.Book{}).Where("title = ?", "RolledBack").Count(&count)
		assert.Zero(t, count)
	})
}

func TestUniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db.DB, "dup@example.com")

	err := db.DB.Create(&entities.User{Email: "dup@example.com", PasswordHash: "x", Name: "Other", RegisteredAt: time.Now()}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
