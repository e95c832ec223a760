package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/services"
)

type CategoriesController struct {
	categories CategoryService
	pagination config.Pagination
}

func NewCategoriesController(categories CategoryService, pagination config.Pagination) *CategoriesController {
	return &CategoriesController{
		categories: categories,
		pagination: pagination,
	}
}

func (controller *CategoriesController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/categorias")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.GET("/:id/libros", controller.ListBooks)
	group.PUT("/:id", controller.Replace)
	group.PATCH("/:id", controller.Update)
	group.DELETE("/:id", controller.Delete)
}

func (controller *CategoriesController) Create(c *gin.Context) {
	var in services.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	category, err := controller.categories.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}
	respondCreated(c, category)
}

func (controller *CategoriesController) List(c *gin.Context) {
	categories, err := controller.categories.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}
	respondOK(c, categories)
}

func (controller *CategoriesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := controller.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get category")
		return
	}
	respondOK(c, category)
}

func (controller *CategoriesController) ListBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, ok := parsePage(c, controller.pagination)
	if !ok {
		return
	}
	books, err := controller.categories.ListBooks(c.Request.Context(), id, page)
	if err != nil {
		respondServiceError(c, err, "list category books")
		return
	}
	respondOK(c, books)
}

func (controller *CategoriesController) Replace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	category, err := controller.categories.Replace(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, "replace category")
		return
	}
	respondOK(c, category)
}

func (controller *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch services.CategoryPatch
	if !bindJSON(c, &patch) {
		return
	}
	category, err := controller.categories.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err, "update category")
		return
	}
	respondOK(c, category)
}

func (controller *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.categories.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete category")
		return
	}
	respondNoContent(c)
}
