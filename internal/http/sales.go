package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/services"
)

type SalesController struct {
	sales      SaleService
	pagination config.Pagination
}

func NewSalesController(sales SaleService, pagination config.Pagination) *SalesController {
	return &SalesController{
		sales:      sales,
		pagination: pagination,
	}
}

func (controller *SalesController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/ventas")
	group.POST("", controller.Create)
	group.GET("", controller.List)
	group.GET("/:id", controller.Get)
	group.DELETE("/:id", controller.Delete)
}

func (controller *SalesController) Create(c *gin.Context) {
	var in services.SaleInput
	if !bindJSON(c, &in) {
		return
	}
	sale, err := controller.sales.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create sale")
		return
	}
	respondCreated(c, sale)
}

func (controller *SalesController) List(c *gin.Context) {
	page, ok := parsePage(c, controller.pagination)
	if !ok {
		return
	}
	userID, ok := parseOptionalQueryID(c, "usuario_id")
	if !ok {
		return
	}
	sales, err := controller.sales.List(c.Request.Context(), services.SaleFilter{UserID: userID}, page)
	if err != nil {
		respondServiceError(c, err, "list sales")
		return
	}
	respondOK(c, sales)
}

func (controller *SalesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sale, err := controller.sales.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get sale")
		return
	}
	respondOK(c, sale)
}

func (controller *SalesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.sales.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete sale")
		return
	}
	respondNoContent(c)
}
