package entities

import "time"

// User is a registered customer or administrator.
// The password hash is stored in the "password" column and never serialised.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:50;not null;uniqueIndex" json:"correo" validate:"required,email,max=50"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"nombre" validate:"required,max=100"`
	Address      string    `gorm:"size:200" json:"direccion" validate:"max=200"`
	Phone        string    `gorm:"size:15" json:"telefono" validate:"max=15"`
	TaxID        string    `gorm:"column:rfc;size:20" json:"rfc" validate:"max=20"`
	RegisteredAt time.Time `gorm:"not null" json:"fecha_registro"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"es_admin"`
}
