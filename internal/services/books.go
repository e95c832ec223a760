package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/database/books"
	"github.com/mrlokans/libreria/internal/database/categories"
	"github.com/mrlokans/libreria/internal/entities"
)

// BookInput is the body of POST and PUT /libros.
type BookInput struct {
	Title             string  `json:"titulo"`
	Author            string  `json:"autor"`
	Publisher         string  `json:"editorial"`
	Price             float64 `json:"precio"`
	AvailableQuantity int     `json:"cantidad_disponible"`
	Description       string  `json:"descripcion"`
	ImageURL          string  `json:"imagen_url"`
	CategoryIDs       []uint  `json:"categorias_ids"`
}

// BookPatch is the body of PATCH /libros/{id}. Nil fields are left unchanged.
type BookPatch struct {
	Title             *string  `json:"titulo"`
	Author            *string  `json:"autor"`
	Publisher         *string  `json:"editorial"`
	Price             *float64 `json:"precio"`
	AvailableQuantity *int     `json:"cantidad_disponible"`
	Description       *string  `json:"descripcion"`
	ImageURL          *string  `json:"imagen_url"`
	CategoryIDs       *[]uint  `json:"categorias_ids"`
}

// BookFilter narrows a book listing.
type BookFilter struct {
	CategoryID uint
}

const bookNotFound = "Libro no encontrado"

type BookService struct {
	db Transactor
}

func NewBookService(db Transactor) *BookService {
	return &BookService{db: db}
}

func (in BookInput) apply(book *entities.Book) {
	book.Title = in.Title
	book.Author = in.Author
	book.Publisher = in.Publisher
	book.Price = in.Price
	book.AvailableQuantity = in.AvailableQuantity
	book.Description = in.Description
	book.ImageURL = in.ImageURL
}

func (p BookPatch) apply(book *entities.Book) {
	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.Publisher != nil {
		book.Publisher = *p.Publisher
	}
	if p.Price != nil {
		book.Price = *p.Price
	}
	if p.AvailableQuantity != nil {
		book.AvailableQuantity = *p.AvailableQuantity
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.ImageURL != nil {
		book.ImageURL = *p.ImageURL
	}
}

// Create validates and stores a new book with its optional categories.
func (s *BookService) Create(ctx context.Context, in BookInput) (*entities.Book, error) {
	book := &entities.Book{}
	in.apply(book)
	if err := checkEntity(book); err != nil {
		return nil, err
	}
	categoryIDs := dedupe(in.CategoryIDs)

	var created *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := checkCategories(tx, categoryIDs); err != nil {
			return err
		}
		repo := books.NewRepository(tx)
		if err := repo.Create(book); err != nil {
			return err
		}
		if err := repo.ReplaceCategories(book.ID, categoryIDs); err != nil {
			return err
		}
		var err error
		created, err = repo.GetByID(book.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns a window of books, optionally limited to one category.
func (s *BookService) List(ctx context.Context, filter BookFilter, page Page) ([]entities.Book, error) {
	var result []entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		var err error
		if filter.CategoryID != 0 {
			result, err = repo.ListByCategory(filter.CategoryID, page.Offset, page.Limit)
		} else {
			result, err = repo.List(page.Offset, page.Limit)
		}
		return err
	})
	return result, err
}

// Get returns one book.
func (s *BookService) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		book, err = books.NewRepository(tx).GetByID(id)
		if isRecordNotFound(err) {
			return notFound(bookNotFound)
		}
		return err
	})
	return book, err
}

// Update merges the supplied fields into the stored book and re-validates
// the merged record before writing.
func (s *BookService) Update(ctx context.Context, id uint, patch BookPatch) (*entities.Book, error) {
	var categoryIDs []uint
	if patch.CategoryIDs != nil {
		categoryIDs = dedupe(*patch.CategoryIDs)
		if categoryIDs == nil {
			categoryIDs = []uint{}
		}
	}
	return s.write(ctx, id, patch.apply, categoryIDs)
}

// Replace overwrites every field of the stored book. An absent
// categorias_ids clears the book's categories.
func (s *BookService) Replace(ctx context.Context, id uint, in BookInput) (*entities.Book, error) {
	categoryIDs := dedupe(in.CategoryIDs)
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}
	return s.write(ctx, id, in.apply, categoryIDs)
}

// write loads the book, applies mutate, validates and saves. A nil
// categoryIDs leaves the category set untouched.
func (s *BookService) write(ctx context.Context, id uint, mutate func(*entities.Book), categoryIDs []uint) (*entities.Book, error) {
	var updated *entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		book, err := repo.GetByID(id)
		if isRecordNotFound(err) {
			return notFound(bookNotFound)
		}
		if err != nil {
			return err
		}

		mutate(book)
		if err := checkEntity(book); err != nil {
			return err
		}
		if err := repo.Save(book); err != nil {
			return err
		}

		if categoryIDs != nil {
			if err := checkCategories(tx, categoryIDs); err != nil {
				return err
			}
			if err := repo.ReplaceCategories(book.ID, categoryIDs); err != nil {
				return err
			}
		}

		updated, err = repo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book unless it has been sold. Cart and category
// memberships are dropped with it.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		if _, err := repo.GetByID(id); err != nil {
			if isRecordNotFound(err) {
				return notFound(bookNotFound)
			}
			return err
		}

		sold, err := repo.CountSales(id)
		if err != nil {
			return err
		}
		if sold > 0 {
			return conflict("No se puede eliminar el libro porque está incluido en %d venta(s)", sold)
		}

		_, err = repo.Delete(id)
		return err
	})
}

func checkCategories(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := categories.NewRepository(tx).ExistingIDs(ids)
	if err != nil {
		return err
	}
	if bad := missing(ids, found); len(bad) > 0 {
		return invalid("Una o más categorías son inválidas: %v", bad)
	}
	return nil
}
