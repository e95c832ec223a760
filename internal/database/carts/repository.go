// Package carts provides database operations for shopping carts and
// the cart_books join table.
package carts

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libreria/internal/database/books"
	"github.com/mrlokans/libreria/internal/entities"
)

// Repository handles all cart database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new carts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a cart. Book membership is written with ReplaceBooks.
func (r *Repository) Create(cart *entities.Cart) error {
	return r.db.Omit(clause.Associations).Create(cart).Error
}

// GetByID retrieves a cart with its books.
func (r *Repository) GetByID(id uint) (*entities.Cart, error) {
	var cart entities.Cart
	if err := r.db.First(&cart, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadBooks(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByUserID retrieves the cart owned by a user.
func (r *Repository) GetByUserID(userID uint) (*entities.Cart, error) {
	var cart entities.Cart
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").First(&cart).Error; err != nil {
		return nil, err
	}
	if err := r.loadBooks(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ExistsForUser reports whether the user already owns a cart.
func (r *Repository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.Cart{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a window of carts in insertion order, each with its books.
func (r *Repository) List(offset, limit int) ([]entities.Cart, error) {
	carts := []entities.Cart{}
	if err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&carts).Error; err != nil {
		return nil, err
	}
	for i := range carts {
		if err := r.loadBooks(&carts[i]); err != nil {
			return nil, err
		}
	}
	return carts, nil
}

// Delete removes a cart; its cart_books rows go with it (ON DELETE CASCADE).
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Cart{}, id)
	return result.RowsAffected, result.Error
}

// BookIDs returns the ids of the books in a cart.
func (r *Repository) BookIDs(cartID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entities.CartBook{}).
		Where("cart_id = ?", cartID).
		Order("book_id ASC").
		Pluck("book_id", &ids).Error
	return ids, err
}

// ReplaceBooks makes bookIDs the complete book set of a cart.
func (r *Repository) ReplaceBooks(cartID uint, bookIDs []uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&entities.CartBook{}).Error; err != nil {
		return err
	}
	if len(bookIDs) == 0 {
		return nil
	}
	rows := make([]entities.CartBook, len(bookIDs))
	for i, id := range bookIDs {
		rows[i] = entities.CartBook{CartID: cartID, BookID: id}
	}
	return r.db.Omit(clause.Associations).Create(&rows).Error
}

// loadBooks fills BookIDs and the full book projections, category ids included.
func (r *Repository) loadBooks(cart *entities.Cart) error {
	ids, err := r.BookIDs(cart.ID)
	if err != nil {
		return err
	}
	list, err := books.NewRepository(r.db).FindByIDs(ids)
	if err != nil {
		return err
	}
	cart.BookIDs = ids
	cart.Books = list
	return nil
}
