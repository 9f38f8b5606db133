package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":  "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":  "Authorization, Content-Type, " + GuestHeader + ", " + RequestIDHeader,
	"Access-Control-Expose-Headers": RequestIDHeader + ", Content-Disposition, Retry-After",
	"Access-Control-Max-Age":        "600",
}

// CORS allows the listed browser origins. A "*" entry allows any origin but
// drops credentials. Preflights from other origins are refused with 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]bool, len(allowedOrigins))
	anyOrigin := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			anyOrigin = true
		default:
			exact[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		preflight := c.Request.Method == http.MethodOptions
		h := c.Writer.Header()
		if origin != "" {
			h.Add("Vary", "Origin")
		}

		allowed := origin != "" && (exact[origin] || anyOrigin)
		if allowed {
			h.Set("Access-Control-Allow-Origin", origin)
			if exact[origin] {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			for k, v := range corsHeaders {
				h.Set(k, v)
			}
		}

		if preflight {
			if origin != "" && !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
