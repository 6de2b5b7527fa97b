package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rasouli77/ellenovastyle/config"
	"github.com/Rasouli77/ellenovastyle/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCartSessionIssuesCookie(t *testing.T) {
	router := gin.New()
	router.Use(CartSession())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetCartSession(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	session := w.Body.String()
	assert.NotEmpty(t, session)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CartSessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, session, cookie.Value)
}

func TestCartSessionReusesCookie(t *testing.T) {
	router := gin.New()
	router.Use(CartSession())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetCartSession(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CartSessionCookie, Value: "existing-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "existing-token", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestAPIKey(t *testing.T) {
	router := gin.New()
	router.GET("/", APIKey("X-API-KEY", "secret-key"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-KEY", "secret-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-KEY", "wrong")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An empty configured key refuses everything.
	router = gin.New()
	router.GET("/", APIKey("X-API-KEY", ""), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("test-secret", 24)
	router := gin.New()
	router.GET("/", JWTAuth(jwtUtil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetInt64(CtxUserID),
			"is_staff": c.GetBool(CtxIsStaff),
		})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtUtil.GenerateToken(7, "09121234567", false)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestOptionalJWTAuth(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("test-secret", 24)
	router := gin.New()
	router.GET("/", OptionalJWTAuth(jwtUtil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(CtxUserID)})
	})

	// Anonymous shoppers pass through with no identity attached.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	// A garbage token is ignored rather than rejected.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	token, err := jwtUtil.GenerateToken(9, "09121234567", false)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestStaffOnly(t *testing.T) {
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.Set(CtxIsStaff, false)
	}, StaffOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitRule{RPS: 1, Burst: 2})
	router := gin.New()
	router.GET("/", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := []int{}
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
