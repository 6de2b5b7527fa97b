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

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	DiscountCode  string `json:"discount_code"`
	Name          string `json:"name" binding:"required"`
	Mobile        string `json:"mobile" binding:"required"`
	Address       string `json:"address" binding:"required"`
	CityID        *int64 `json:"city_id"`
	OrderName     string `json:"order_name"`
}

// PlaceOrder POST /checkout creates the order and answers with the gateway
// redirect URL.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), service.CheckoutInput{
		UserID:        c.GetInt64(middleware.CtxUserID),
		Session:       middleware.GetCartSession(c),
		PaymentMethod: req.PaymentMethod,
		DiscountCode:  req.DiscountCode,
		Name:          req.Name,
		Mobile:        req.Mobile,
		Address:       req.Address,
		CityID:        req.CityID,
		OrderName:     req.OrderName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			app.Fail(c, http.StatusBadRequest, e.ERROR_CART_EMPTY)
		case errors.Is(err, service.ErrPaymentMethod):
			app.Fail(c, http.StatusBadRequest, e.ERROR_PAYMENT_METHOD)
		case errors.Is(err, service.ErrDiscountInvalid):
			app.Fail(c, http.StatusBadRequest, e.ERROR_DISCOUNT_INVALID)
		case errors.Is(err, service.ErrNotEligible):
			app.Fail(c, http.StatusBadRequest, e.ERROR_GATEWAY_NOT_ELIGIBLE)
		default:
			logger.Error("checkout failed", "error", err)
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		}
		return
	}
	app.OK(c, result)
}
