package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/services"
)

type CartsController struct {
	carts      CartService
	pagination config.Pagination
}

func NewCartsController(carts CartService, pagination config.Pagination) *CartsController {
	return &CartsController{
		carts:      carts,
		pagination: pagination,
	}
}

func (controller *CartsController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/carritos")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/usuario/:usuario_id", controller.GetByUser)
	group.GET("/:id", controller.Get)
	group.PATCH("/:id", controller.Update)
	group.PUT("/:id", controller.Update)
	group.DELETE("/:id", controller.Delete)
}

func (controller *CartsController) Create(c *gin.Context) {
	var in services.CartInput
	if !bindJSON(c, &in) {
		return
	}
	cart, err := controller.carts.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create cart")
		return
	}
	respondCreated(c, cart)
}

func (controller *CartsController) List(c *gin.Context) {
	page, ok := parsePage(c, controller.pagination)
	if !ok {
		return
	}
	carts, err := controller.carts.List(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, err, "list carts")
		return
	}
	respondOK(c, carts)
}

func (controller *CartsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cart, err := controller.carts.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get cart")
		return
	}
	respondOK(c, cart)
}

func (controller *CartsController) GetByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	cart, err := controller.carts.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "get user cart")
		return
	}
	respondOK(c, cart)
}

// Update serves both PATCH and PUT: either way libros_ids becomes the
// cart's complete book set.
func (controller *CartsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.CartUpdate
	if !bindJSON(c, &in) {
		return
	}
	cart, err := controller.carts.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, "update cart")
		return
	}
	respondOK(c, cart)
}

func (controller *CartsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.carts.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete cart")
		return
	}
	respondNoContent(c)
}
