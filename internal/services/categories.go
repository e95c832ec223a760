package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/database/books"
	"github.com/mrlokans/libreria/internal/database/categories"
	"github.com/mrlokans/libreria/internal/entities"
)

// CategoryInput is the body of POST and PUT /categorias.
type CategoryInput struct {
	Name string `json:"nombre"`
}

// CategoryPatch is the body of PATCH /categorias/{id}.
type CategoryPatch struct {
	Name *string `json:"nombre"`
}

const categoryNotFound = "Categoría no encontrada"

type CategoryService struct {
	db Transactor
}

func NewCategoryService(db Transactor) *CategoryService {
	return &CategoryService{db: db}
}

func duplicateCategory(name string) error {
	return conflict("Ya existe una categoría con el nombre '%s'", name)
}

// Create stores a category with a name no other category uses.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*entities.Category, error) {
	category := &entities.Category{Name: strings.TrimSpace(in.Name)}
	if err := checkEntity(category); err != nil {
		return nil, err
	}

	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)
		taken, err := repo.NameTaken(category.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCategory(category.Name)
		}
		err = repo.Create(category)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateCategory(category.Name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]entities.Category, error) {
	var result []entities.Category
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = categories.NewRepository(tx).List()
		return err
	})
	return result, err
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*entities.Category, error) {
	var category *entities.Category
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		category, err = categories.NewRepository(tx).GetByID(id)
		if isRecordNotFound(err) {
			return notFound(categoryNotFound)
		}
		return err
	})
	return category, err
}

// ListBooks returns a window of the books filed under a category.
func (s *CategoryService) ListBooks(ctx context.Context, id uint, page Page) ([]entities.Book, error) {
	var result []entities.Book
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := categories.NewRepository(tx).GetByID(id); err != nil {
			if isRecordNotFound(err) {
				return notFound(categoryNotFound)
			}
			return err
		}
		var err error
		result, err = books.NewRepository(tx).ListByCategory(id, page.Offset, page.Limit)
		return err
	})
	return result, err
}

// Replace renames a category (PUT).
func (s *CategoryService) Replace(ctx context.Context, id uint, in CategoryInput) (*entities.Category, error) {
	return s.Update(ctx, id, CategoryPatch{Name: &in.Name})
}

// Update renames a category when a name is supplied (PATCH). Keeping the
// current name is not a collision.
func (s *CategoryService) Update(ctx context.Context, id uint, patch CategoryPatch) (*entities.Category, error) {
	var category *entities.Category
	err := s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)
		var err error
		category, err = repo.GetByID(id)
		if isRecordNotFound(err) {
			return notFound(categoryNotFound)
		}
		if err != nil {
			return err
		}
		if patch.Name == nil {
			return nil
		}

		category.Name = strings.TrimSpace(*patch.Name)
		if err := checkEntity(category); err != nil {
			return err
		}
		taken, err := repo.NameTaken(category.Name, category.ID)
		if err != nil {
			return err
		}
		if taken {
			return duplicateCategory(category.Name)
		}
		err = repo.Save(category)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateCategory(category.Name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that no book references.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)
		if _, err := repo.GetByID(id); err != nil {
			if isRecordNotFound(err) {
				return notFound(categoryNotFound)
			}
			return err
		}

		count, err := repo.CountBooks(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return conflict("No se puede eliminar la categoría porque hay %d libro(s) asociado(s)", count)
		}

		_, err = repo.Delete(id)
		return err
	})
}
