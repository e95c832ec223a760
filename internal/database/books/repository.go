// Package books provides database operations for the book catalogue
// and the book_categories join table.
//
// # Usage
//
//	repo := books.NewRepository(tx)
//	book, err := repo.GetByID(id)
package books

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libreria/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a book. Category memberships are written separately.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit(clause.Associations).Create(book).Error
}

// Save overwrites every column of an existing book.
func (r *Repository) Save(book *entities.Book) error {
	return r.db.Omit(clause.Associations).Save(book).Error
}

// GetByID retrieves a book with its category ids.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	ids, err := r.CategoryIDs(book.ID)
	if err != nil {
		return nil, err
	}
	book.CategoryIDs = ids
	return &book, nil
}

// List returns a window of books in insertion order.
func (r *Repository) List(offset, limit int) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, r.loadCategoryIDs(books)
}

// ListByCategory returns a window of the books filed under a category.
func (r *Repository) ListByCategory(categoryID uint, offset, limit int) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.
		Joins("JOIN book_categories ON book_categories.book_id = books.id").
		Where("book_categories.category_id = ?", categoryID).
		Order("books.id ASC").
		Offset(offset).Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, r.loadCategoryIDs(books)
}

// Delete removes a book. Cart and category memberships go with it (ON DELETE CASCADE).
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Book{}, id)
	return result.RowsAffected, result.Error
}

// ExistingIDs returns the subset of ids that name stored books.
func (r *Repository) ExistingIDs(ids []uint) ([]uint, error) {
	found := []uint{}
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.Model(&entities.Book{}).Where("id IN ?", ids).Order("id ASC").Pluck("id", &found).Error
	return found, err
}

// FindByIDs returns the books with the given ids in id order.
func (r *Repository) FindByIDs(ids []uint) ([]entities.Book, error) {
	books := []entities.Book{}
	if len(ids) == 0 {
		return books, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, r.loadCategoryIDs(books)
}

// CategoryIDs returns the ids of the categories a book is filed under.
func (r *Repository) CategoryIDs(bookID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Model(&entities.BookCategory{}).
		Where("book_id = ?", bookID).
		Order("category_id ASC").
		Pluck("category_id", &ids).Error
	return ids, err
}

// ReplaceCategories makes categoryIDs the complete category set of a book.
func (r *Repository) ReplaceCategories(bookID uint, categoryIDs []uint) error {
	if err := r.db.Where("book_id = ?", bookID).Delete(&entities.BookCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]entities.BookCategory, len(categoryIDs))
	for i, id := range categoryIDs {
		rows[i] = entities.BookCategory{BookID: bookID, CategoryID: id}
	}
	return r.db.Omit(clause.Associations).Create(&rows).Error
}

// CountSales returns how many sales include the book.
func (r *Repository) CountSales(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.SaleBook{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

// loadCategoryIDs fills CategoryIDs for a page of books with one query.
func (r *Repository) loadCategoryIDs(books []entities.Book) error {
	if len(books) == 0 {
		return nil
	}
	bookIDs := make([]uint, len(books))
	for i := range books {
		bookIDs[i] = books[i].ID
		books[i].CategoryIDs = []uint{}
	}

	var rows []entities.BookCategory
	err := r.db.
		Where("book_id IN ?", bookIDs).
		Order("category_id ASC").
		Find(&rows).Error
	if err != nil {
		return err
	}

	index := make(map[uint]int, len(books))
	for i := range books {
		index[books[i].ID] = i
	}
	for _, row := range rows {
		if i, ok := index[row.BookID]; ok {
			books[i].CategoryIDs = append(books[i].CategoryIDs, row.CategoryID)
		}
	}
	return nil
}
