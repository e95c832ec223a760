// Package sales provides database operations for sales and the
// sale_books join table.
package sales

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libreria/internal/database/books"
	"github.com/mrlokans/libreria/internal/entities"
)

// Repository handles all sale database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sales repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a sale together with its sale_books rows.
func (r *Repository) Create(sale *entities.Sale, bookIDs []uint) error {
	if err := r.db.Omit(clause.Associations).Create(sale).Error; err != nil {
		return err
	}
	if len(bookIDs) == 0 {
		return nil
	}
	rows := make([]entities.SaleBook, len(bookIDs))
	for i, id := range bookIDs {
		rows[i] = entities.SaleBook{SaleID: sale.ID, BookID: id}
	}
	return r.db.Omit(clause.Associations).Create(&rows).Error
}

// GetByID retrieves a sale with its books.
func (r *Repository) GetByID(id uint) (*entities.Sale, error) {
	var sale entities.Sale
	if err := r.db.First(&sale, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadBooks(&sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns a window of sales in insertion order.
// When userID is non-zero only that user's sales are returned.
func (r *Repository) List(userID uint, offset, limit int) ([]entities.Sale, error) {
	sales := []entities.Sale{}
	query := r.db.Order("id ASC")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return nil, err
	}
	for i := range sales {
		if err := r.loadBooks(&sales[i]); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// Delete removes a sale and its sale_books rows.
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Sale{}, id)
	return result.RowsAffected, result.Error
}

// BookIDs returns the ids of the books in a sale.
func (r *Repository) BookIDs(saleID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entities.SaleBook{}).
		Where("sale_id = ?", saleID).
		Order("book_id ASC").
		Pluck("book_id", &ids).Error
	return ids, err
}

// loadBooks fills BookIDs and the full book projections, category ids included.
func (r *Repository) loadBooks(sale *entities.Sale) error {
	ids, err := r.BookIDs(sale.ID)
	if err != nil {
		return err
	}
	list, err := books.NewRepository(r.db).FindByIDs(ids)
	if err != nil {
		return err
	}
	sale.BookIDs = ids
	sale.Books = list
	return nil
}
