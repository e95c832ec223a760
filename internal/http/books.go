package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/services"
)

type BooksController struct {
	books      BookService
	pagination config.Pagination
}

func NewBooksController(books BookService, pagination config.Pagination) *BooksController {
	return &BooksController{
		books:      books,
		pagination: pagination,
	}
}

func (controller *BooksController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/libros")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.PATCH("/:id", controller.Update)
	group.PUT("/:id", controller.Replace)
	group.DELETE("/:id", controller.Delete)
}

func (controller *BooksController) Create(c *gin.Context) {
	var in services.BookInput
	if !bindJSON(c, &in) {
		return
	}
	book, err := controller.books.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

func (controller *BooksController) List(c *gin.Context) {
	page, ok := parsePage(c, controller.pagination)
	if !ok {
		return
	}
	categoryID, ok := parseOptionalQueryID(c, "categoria_id")
	if !ok {
		return
	}
	books, err := controller.books.List(c.Request.Context(), services.BookFilter{CategoryID: categoryID}, page)
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	respondOK(c, books)
}

func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.books.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	respondOK(c, book)
}

func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch services.BookPatch
	if !bindJSON(c, &patch) {
		return
	}
	book, err := controller.books.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	respondOK(c, book)
}

func (controller *BooksController) Replace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.BookInput
	if !bindJSON(c, &in) {
		return
	}
	book, err := controller.books.Replace(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, "replace book")
		return
	}
	respondOK(c, book)
}

func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.books.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}
	respondNoContent(c)
}
