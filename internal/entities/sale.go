package entities

import "time"

// Sale is a finalised purchase record. Total is whatever the caller sent;
// it is never recomputed from book prices.
type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"usuario_id"`
	User          User      `gorm:"constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
	Total         float64   `gorm:"not null" json:"total" validate:"gt=0"`
	Date          time.Time `gorm:"not null" json:"fecha"`
	PaymentMethod string    `gorm:"size:100;not null" json:"forma_pago" validate:"required,max=100"`

	BookIDs []uint `gorm:"-" json:"libros_ids"`
	Books   []Book `gorm:"-" json:"libros"`
}

// SaleBook is the sale_books join table. Books that were sold cannot be removed.
type SaleBook struct {
	SaleID uint `gorm:"primaryKey"`
	BookID uint `gorm:"primaryKey;index"`
	Sale   Sale `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Book   Book `gorm:"constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
}
