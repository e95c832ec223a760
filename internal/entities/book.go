package entities

// Book is a catalogue entry.
// CategoryIDs is filled from the book_categories join table by the repository.
type Book struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Title             string  `gorm:"size:100;not null" json:"titulo" validate:"required,max=100"`
	Author            string  `gorm:"size:100;not null" json:"autor" validate:"required,max=100"`
	Publisher         string  `gorm:"size:100;not null" json:"editorial" validate:"required,max=100"`
	Price             float64 `gorm:"not null" json:"precio" validate:"gt=0"`
	AvailableQuantity int     `gorm:"not null;default:0" json:"cantidad_disponible" validate:"gte=0"`
	Description       string  `gorm:"size:400" json:"descripcion" validate:"max=400"`
	ImageURL          string  `json:"imagen_url"`

	CategoryIDs []uint `gorm:"-" json:"categorias_ids"`
}

// Category groups books under a unique name.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"nombre" validate:"required,max=100"`
}

// BookCategory is the book_categories join table.
// Removing a book drops its rows; a referenced category cannot be removed.
type BookCategory struct {
	BookID     uint     `gorm:"primaryKey"`
	CategoryID uint     `gorm:"primaryKey;index"`
	Book       Book     `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Category   Category `gorm:"constraint:OnDelete:RESTRICT" json:"-" validate:"-"`
}
