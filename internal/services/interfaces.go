package services

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs a unit of work. *database.Database satisfies it.
// Services build their repositories over the tx handle passed to fn.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
