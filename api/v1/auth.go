package v1

import (
	"errors"
	"net/http"

	"github.com/Rasouli77/ellenovastyle/api/middleware"
	"github.com/Rasouli77/ellenovastyle/internal/service"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type requestOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Name   string `json:"name"`
}

// RequestOTP POST /auth/register texts a login code to the mobile number,
// registering the account on first contact.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.auth.RequestOTP(c.Request.Context(), req.Mobile, req.Name); err != nil {
		if errors.Is(err, service.ErrMobileInvalid) {
			app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
			return
		}
		logger.Error("otp request failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// VerifyOTP POST /auth/verify logs the shopper in and returns the token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	token, user, err := h.auth.VerifyOTP(c.Request.Context(), req.Mobile, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOTPExpired):
			app.Fail(c, http.StatusUnauthorized, e.ERROR_OTP_EXPIRED)
		case errors.Is(err, service.ErrOTPWrong):
			app.Fail(c, http.StatusUnauthorized, e.ERROR_OTP_WRONG)
		case errors.Is(err, service.ErrUserNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_USER_NOT_EXISTS)
		default:
			logger.Error("otp verify failed", "error", err)
			app.Fail(c, http.StatusInternalServerError, e.ERROR)
		}
		return
	}
	app.OK(c, gin.H{"token": token, "user": user})
}

// GetProfile GET /profile (auth)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, err := h.auth.GetProfile(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		logger.Error("get profile failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, profile)
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	ProvinceID *int64 `json:"province_id"`
	CityID     *int64 `json:"city_id"`
}

// UpdateProfile PATCH /profile (auth)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.auth.UpdateProfile(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req.Name, req.Address, req.ProvinceID, req.CityID); err != nil {
		logger.Error("update profile failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}
