package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/database/sales"
	"github.com/mrlokans/libreria/internal/database/users"
	"github.com/mrlokans/libreria/internal/entities"
)

// SaleInput is the body of POST /ventas.
type SaleInput struct {
	UserID        uint    `json:"usuario_id"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"forma_pago"`
	BookIDs       []uint  `json:"libros_ids"`
}

// SaleFilter narrows a sale listing.
type SaleFilter struct {
	UserID uint
}

const saleNotFound = "Venta no encontrada"

type SaleService struct {
	db  Transactor
	now func() time.Time
}

func NewSaleService(db Transactor) *SaleService {
	return &SaleService{db: db, now: time.Now}
}

// Create records a finalised sale. The total is stored as sent.
func (s *SaleService) Create(ctx context.Context, in SaleInput) (*entities.Sale, error) {
	sale := &entities.Sale{
		UserID:        in.UserID,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		Date:          s.now().UTC(),
	}
	if err := checkEntity(sale); err != nil {
		return nil, err
	}
	bookIDs := dedupe(in.BookIDs)

	var created *entities.Sale
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := users.NewRepository(tx).Exists(in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return invalid(userNotFoundMsg)
		}
		if err := checkBooks(tx, bookIDs); err != nil {
			return err
		}

		repo := sales.NewRepository(tx)
		if err := repo.Create(sale, bookIDs); err != nil {
			return err
		}
		created, err = repo.GetByID(sale.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *SaleService) List(ctx context.Context, filter SaleFilter, page Page) ([]entities.Sale, error) {
	var result []entities.Sale
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = sales.NewRepository(tx).List(filter.UserID, page.Offset, page.Limit)
		return err
	})
	return result, err
}

func (s *SaleService) Get(ctx context.Context, id uint) (*entities.Sale, error) {
	var sale *entities.Sale
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		sale, err = sales.NewRepository(tx).GetByID(id)
		if isRecordNotFound(err) {
			return notFound(saleNotFound)
		}
		return err
	})
	return sale, err
}

func (s *SaleService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		affected, err := sales.NewRepository(tx).Delete(id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound(saleNotFound)
		}
		return nil
	})
}
