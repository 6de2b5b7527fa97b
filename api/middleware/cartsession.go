package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session"
	CtxCartSession    = "cart_session"

	cartCookieMaxAge = 14 * 24 * 60 * 60
)

// CartSession guarantees every visitor a cart token. The token is an opaque
// uuid held in a cookie; carts live in Redis keyed by it, so anonymous and
// logged-in shoppers get the same cart behavior.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(CartSessionCookie)
		if err != nil || session == "" {
			session = uuid.NewString()
			c.SetCookie(CartSessionCookie, session, cartCookieMaxAge, "/", "", false, true)
		}
		c.Set(CtxCartSession, session)
		c.Next()
	}
}

// GetCartSession reads the token placed by CartSession.
func GetCartSession(c *gin.Context) string {
	return c.GetString(CtxCartSession)
}
