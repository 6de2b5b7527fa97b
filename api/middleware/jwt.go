package middleware

import (
	"net/http"
	"strings"

	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"
	"github.com/Rasouli77/ellenovastyle/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID  = "user_id"
	CtxMobile  = "mobile"
	CtxIsStaff = "is_staff"
)

// JWTAuth requires a valid bearer token and stores the claims on the context.
func JWTAuth(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errCode := parseAuthHeader(c, jwtUtil)
		if claims == nil {
			app.Fail(c, http.StatusUnauthorized, errCode)
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxMobile, claims.Mobile)
		c.Set(CtxIsStaff, claims.IsStaff)
		c.Next()
	}
}

// OptionalJWTAuth parses the token when present but never rejects; listings
// and the cart work for anonymous shoppers.
func OptionalJWTAuth(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := parseAuthHeader(c, jwtUtil); claims != nil {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxMobile, claims.Mobile)
			c.Set(CtxIsStaff, claims.IsStaff)
		}
		c.Next()
	}
}

// StaffOnly gates the vendor endpoints; it must run after JWTAuth.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsStaff) {
			app.Fail(c, http.StatusForbidden, e.ERROR_FORBIDDEN)
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseAuthHeader(c *gin.Context, jwtUtil *utils.JWTUtil) (*utils.Claims, int) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, e.ERROR_AUTH
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, e.ERROR_AUTH
	}
	claims, err := jwtUtil.ParseToken(parts[1])
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, e.ERROR_AUTH_CHECK_TOKEN_TIMEOUT
		}
		return nil, e.ERROR_AUTH_CHECK_TOKEN_FAIL
	}
	return claims, 0
}
