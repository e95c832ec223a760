package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgReadOnly = "La API está en modo de solo lectura"

// readOnlyAllowed lists the non-GET paths that keep working in read-only
// mode. Login writes nothing to the database.
var readOnlyAllowed = map[string]bool{
	"/auth/login": true,
}

// ReadOnlyMiddleware rejects every write with 403 while enabled.
func ReadOnlyMiddleware(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if readOnlyAllowed[c.Request.URL.Path] {
			c.Next()
			return
		}

		respondError(c, http.StatusForbidden, msgReadOnly)
		c.Abort()
	}
}
