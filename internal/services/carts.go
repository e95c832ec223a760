package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/database/books"
	"github.com/mrlokans/libreria/internal/database/carts"
	"github.com/mrlokans/libreria/internal/database/users"
	"github.com/mrlokans/libreria/internal/entities"
)

// CartInput is the body of POST /carritos.
type CartInput struct {
	UserID  uint   `json:"usuario_id"`
	BookIDs []uint `json:"libros_ids"`
}

// CartUpdate is the body of PATCH and PUT /carritos/{id}.
// A nil BookIDs leaves membership unchanged; an empty list clears it.
type CartUpdate struct {
	BookIDs *[]uint `json:"libros_ids"`
}

const (
	cartNotFound    = "Carrito no encontrado"
	invalidBookIDs  = "Uno o más IDs de libros son inválidos"
	userNotFoundMsg = "Usuario no encontrado"
)

type CartService struct {
	db Transactor
}

func NewCartService(db Transactor) *CartService {
	return &CartService{db: db}
}

// Create opens the single cart a user may own.
func (s *CartService) Create(ctx context.Context, in CartInput) (*entities.Cart, error) {
	bookIDs := dedupe(in.BookIDs)

	var created *entities.Cart
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := users.NewRepository(tx).Exists(in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return invalid(userNotFoundMsg)
		}

		repo := carts.NewRepository(tx)
		has, err := repo.ExistsForUser(in.UserID)
		if err != nil {
			return err
		}
		if has {
			return conflict("El usuario ya tiene un carrito")
		}

		if err := checkBooks(tx, bookIDs); err != nil {
			return err
		}

		cart := &entities.Cart{UserID: in.UserID}
		if err := repo.Create(cart); err != nil {
			return err
		}
		if err := repo.ReplaceBooks(cart.ID, bookIDs); err != nil {
			return err
		}
		created, err = repo.GetByID(cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CartService) List(ctx context.Context, page Page) ([]entities.Cart, error) {
	var result []entities.Cart
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = carts.NewRepository(tx).List(page.Offset, page.Limit)
		return err
	})
	return result, err
}

func (s *CartService) Get(ctx context.Context, id uint) (*entities.Cart, error) {
	var cart *entities.Cart
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		cart, err = carts.NewRepository(tx).GetByID(id)
		if isRecordNotFound(err) {
			return notFound(cartNotFound)
		}
		return err
	})
	return cart, err
}

// GetByUser returns the cart owned by userID.
func (s *CartService) GetByUser(ctx context.Context, userID uint) (*entities.Cart, error) {
	var cart *entities.Cart
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		cart, err = carts.NewRepository(tx).GetByUserID(userID)
		if isRecordNotFound(err) {
			return notFound(cartNotFound)
		}
		return err
	})
	return cart, err
}

// Update replaces the cart's book set. Every id must name a stored book,
// otherwise nothing changes.
func (s *CartService) Update(ctx context.Context, id uint, in CartUpdate) (*entities.Cart, error) {
	var updated *entities.Cart
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := carts.NewRepository(tx)
		cart, err := repo.GetByID(id)
		if isRecordNotFound(err) {
			return notFound(cartNotFound)
		}
		if err != nil {
			return err
		}
		if in.BookIDs == nil {
			updated = cart
			return nil
		}

		bookIDs := dedupe(*in.BookIDs)
		if err := checkBooks(tx, bookIDs); err != nil {
			return err
		}
		if err := repo.ReplaceBooks(id, bookIDs); err != nil {
			return err
		}
		updated, err = repo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CartService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		affected, err := carts.NewRepository(tx).Delete(id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return notFound(cartNotFound)
		}
		return nil
	})
}

func checkBooks(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := books.NewRepository(tx).ExistingIDs(ids)
	if err != nil {
		return err
	}
	if len(missing(ids, found)) > 0 {
		return invalid(invalidBookIDs)
	}
	return nil
}
