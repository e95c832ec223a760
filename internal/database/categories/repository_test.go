package categories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/database"
	"github.com/mrlokans/libreria/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "categories.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db
}

func TestRepository_CreateAndList(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.Create(&entities.Category{Name: "Ciencia"}))
	require.NoError(t, repo.Create(&entities.Category{Name: "Arte"}))

	err := repo.Create(&entities.Category{Name: "Ciencia"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ciencia", list[0].Name)
	assert.Equal(t, "Arte", list[1].Name)
}

func TestRepository_NameTaken(t *testing.T) {
	repo, _ := setupTestDB(t)

	cat := &entities.Category{Name: "Poesía"}
	require.NoError(t, repo.Create(cat))

	taken, err := repo.NameTaken("Poesía", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken("Poesía", cat.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a category does not collide with itself")

	taken, err = repo.NameTaken("Teatro", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_DeleteGuard(t *testing.T) {
	repo, db := setupTestDB(t)

	cat := &entities.Category{Name: "Historia"}
	require.NoError(t, repo.Create(cat))
	book := &entities.Book{Title: "T", Author: "A", Publisher: "P", Price: 1}
	require.NoError(t, db.DB.Create(book).Error)
	require.NoError(t, db.DB.Omit("Book", "Category").Create(&entities.BookCategory{BookID: book.ID, CategoryID: cat.ID}).Error)

	count, err := repo.CountBooks(cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.Delete(cat.ID)
	assert.Error(t, err, "referenced categories are restricted by the store")

	require.NoError(t, db.DB.Delete(&entities.Book{}, book.ID).Error)
	affected, err := repo.Delete(cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestRepository_ExistingIDs(t *testing.T) {
	repo, _ := setupTestDB(t)

	cat := &entities.Category{Name: "X"}
	require.NoError(t, repo.Create(cat))

	found, err := repo.ExistingIDs([]uint{cat.ID, cat.ID + 100})
	require.NoError(t, err)
	assert.Equal(t, []uint{cat.ID}, found)

	found, err = repo.ExistingIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}
