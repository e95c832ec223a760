// Package categories provides database operations for book categories.
package categories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a category.
func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

// Save overwrites an existing category.
func (r *Repository) Save(category *entities.Category) error {
	return r.db.Save(category).Error
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// NameTaken reports whether another category already uses name.
// excludeID is ignored when zero.
func (r *Repository) NameTaken(name string, excludeID uint) (bool, error) {
	var category entities.Category
	query := r.db.Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns every category in insertion order.
func (r *Repository) List() ([]entities.Category, error) {
	categories := []entities.Category{}
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

// Delete removes a category.
func (r *Repository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&entities.Category{}, id)
	return result.RowsAffected, result.Error
}

// CountBooks returns how many books are filed under the category.
func (r *Repository) CountBooks(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.BookCategory{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// ExistingIDs returns the subset of ids that name stored categories.
func (r *Repository) ExistingIDs(ids []uint) ([]uint, error) {
	found := []uint{}
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.Model(&entities.Category{}).Where("id IN ?", ids).Order("id ASC").Pluck("id", &found).Error
	return found, err
}
