package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"

	"github.com/gin-gonic/gin"
)

// APIKey guards a machine endpoint with a static header key. The stock and
// price endpoints each carry their own header and key.
func APIKey(header, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(header)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			app.Fail(c, http.StatusForbidden, e.ERROR_FORBIDDEN)
			c.Abort()
			return
		}
		c.Next()
	}
}
