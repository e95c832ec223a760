package http

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libreria/internal/entities"
)

func TestBooksController_Create(t *testing.T) {
	s := setupTestServer(t)

	t.Run("sapiens example", func(t *testing.T) {
		body := sapiensBody()
		w := s.do(t, http.MethodPost, "/libros", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		got := decode[map[string]any](t, w)
		assert.NotZero(t, got["id"])
		for key, want := range body {
			assert.EqualValues(t, want, got[key], key)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		id := s.createBook(t, "Homo Deus")
		w := s.do(t, http.MethodGet, "/libros/"+strconv.Itoa(int(id)), nil)
		require.Equal(t, http.StatusOK, w.Code)

		book := decode[entities.Book](t, w)
		assert.Equal(t, id, book.ID)
		assert.Equal(t, "Homo Deus", book.Title)
		assert.Equal(t, 399.0, book.Price)
		assert.Equal(t, 10, book.AvailableQuantity)
	})

	rejections := []struct {
		name  string
		key   string
		value any
	}{
		{"zero price", "precio", 0},
		{"negative price", "precio", -10},
		{"negative quantity", "cantidad_disponible", -1},
		{"empty title", "titulo", ""},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			body := sapiensBody()
			body[tt.key] = tt.value
			w := s.do(t, http.MethodPost, "/libros", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, detail(t, w), tt.key)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/libros", `{"titulo":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, detail(t, w))
	})

	t.Run("wrong type", func(t *testing.T) {
		body := sapiensBody()
		body["precio"] = "caro"
		w := s.do(t, http.MethodPost, "/libros", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_List(t *testing.T) {
	s := setupTestServer(t)
	for _, title := range []string{"A", "B", "C"} {
		s.createBook(t, title)
	}

	t.Run("defaults", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/libros", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]entities.Book](t, w), 3)
	})

	t.Run("offset and limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/libros?offset=1&limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		books := decode[[]entities.Book](t, w)
		require.Len(t, books, 1)
		assert.Equal(t, "B", books[0].Title)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/libros?offset=10", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	for _, query := range []string{"offset=-1", "limit=abc", "limit=-5", "categoria_id=x"} {
		t.Run("invalid "+query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/libros?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("by category", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/categorias", map[string]any{"nombre": "Historia"})
		require.Equal(t, http.StatusCreated, w.Code)
		catID := decode[entities.Category](t, w).ID

		body := sapiensBody()
		body["categorias_ids"] = []uint{catID}
		w = s.do(t, http.MethodPost, "/libros", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodGet, "/libros?categoria_id="+strconv.Itoa(int(catID)), nil)
		require.Equal(t, http.StatusOK, w.Code)
		books := decode[[]entities.Book](t, w)
		require.Len(t, books, 1)
		assert.Equal(t, []uint{catID}, books[0].CategoryIDs)
	})
}

func TestBooksController_Update(t *testing.T) {
	s := setupTestServer(t)
	id := s.createBook(t, "Sapiens")
	path := "/libros/" + strconv.Itoa(int(id))

	t.Run("patch merges", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, path, map[string]any{"precio": 450})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		book := decode[entities.Book](t, w)
		assert.Equal(t, 450.0, book.Price)
		assert.Equal(t, "Sapiens", book.Title)
	})

	t.Run("patch re-validates", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, path, map[string]any{"precio": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, 450.0, decode[entities.Book](t, w).Price)
	})

	t.Run("put replaces", func(t *testing.T) {
		body := sapiensBody()
		body["titulo"] = "Sapiens (ed. ilustrada)"
		w := s.do(t, http.MethodPut, path, body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Sapiens (ed. ilustrada)", decode[entities.Book](t, w).Title)
	})

	t.Run("put needs every field", func(t *testing.T) {
		w := s.do(t, http.MethodPut, path, map[string]any{"titulo": "Solo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/libros/9999", map[string]any{"precio": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Libro no encontrado", detail(t, w))
	})

	t.Run("invalid id", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/libros/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_Delete(t *testing.T) {
	s := setupTestServer(t)
	id := s.createBook(t, "Efímero")
	path := "/libros/" + strconv.Itoa(int(id))

	w := s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	t.Run("sold book", func(t *testing.T) {
		user := s.registerUser(t, "comprador@example.com")
		book := s.createBook(t, "Vendido")
		w := s.do(t, http.MethodPost, "/ventas", map[string]any{
			"usuario_id": user, "total": 399, "forma_pago": "efectivo", "libros_ids": []uint{book},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.do(t, http.MethodDelete, "/libros/"+strconv.Itoa(int(book)), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, detail(t, w), "venta")
	})
}
