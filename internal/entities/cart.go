package entities

import "time"

// Cart is a user's unpriced selection of books.
// UserID is indexed, not unique: one cart per user is enforced by the cart service.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"usuario_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt time.Time `json:"-"`

	BookIDs []uint `gorm:"-" json:"libros_ids"`
	Books   []Book `gorm:"-" json:"libros"`
}

// CartBook is the cart_books join table.
type CartBook struct {
	CartID uint `gorm:"primaryKey"`
	BookID uint `gorm:"primaryKey;index"`
	Cart   Cart `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Book   Book `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}
