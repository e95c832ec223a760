package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/logger"
	"github.com/mrlokans/libreria/internal/services"
	"github.com/mrlokans/libreria/internal/validation"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is a plain informational response.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logger.Get().Error().
		Err(err).
		Str("context", context).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Detail: message})
}

// respondServiceError maps a service error onto a status code.
func respondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, validation.ErrInvalid):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondOK sends a 200 OK response with data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondNoContent sends an empty 204 response.
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// --- Request Parsing ---

// bindJSON decodes the request body into dst.
// On failure it responds with a 400 error and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "Cuerpo JSON inválido: "+err.Error())
		return false
	}
	return true
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Parámetro "+paramName+" inválido")
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID reads an unsigned integer filter from the query string.
// A missing parameter yields 0, true.
func parseOptionalQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr, present := c.GetQuery(paramName)
	if !present || idStr == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Parámetro "+paramName+" inválido")
		return 0, false
	}
	return uint(id), true
}

// parsePage reads offset and limit. A missing limit uses the configured
// default; larger limits are clamped to the configured maximum.
func parsePage(c *gin.Context, cfg config.Pagination) (services.Page, bool) {
	page := services.Page{Offset: 0, Limit: cfg.DefaultLimit}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respondBadRequest(c, "Parámetro offset inválido")
			return page, false
		}
		page.Offset = offset
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondBadRequest(c, "Parámetro limit inválido")
			return page, false
		}
		page.Limit = limit
	}

	if cfg.MaxLimit > 0 && page.Limit > cfg.MaxLimit {
		page.Limit = cfg.MaxLimit
	}
	return page, true
}
