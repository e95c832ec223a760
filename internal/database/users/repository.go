// Package users provides database operations for registered users.
//
// # Usage
//
//	repo := users.NewRepository(tx)
//	user, err := repo.GetByEmail(email)
package users

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user. The email column is unique, so a duplicate
// surfaces as gorm.ErrDuplicatedKey.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by normalised email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given id is stored.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailTaken reports whether email is already registered.
func (r *Repository) EmailTaken(email string) (bool, error) {
	_, err := r.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetAdmin updates the admin flag and password hash of an existing user.
func (r *Repository) SetAdmin(id uint, passwordHash string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Updates(map[string]any{
		"is_admin": true,
		"password": passwordHash,
	}).Error
}

// CountAdmins returns how many administrators exist.
func (r *Repository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}
