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

type CartHandler struct {
	cart     *service.CartService
	discount *service.DiscountService
	checkout *service.CheckoutService
}

func NewCartHandler(cart *service.CartService, discount *service.DiscountService, checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, discount: discount, checkout: checkout}
}

type cartLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	SizeID    int64 `json:"size_id" binding:"required"`
}

// Add POST /cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	session := middleware.GetCartSession(c)
	entry, err := h.cart.Add(c.Request.Context(), session, req.ProductID, req.SizeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_PRODUCT_NOT_EXISTS)
		case errors.Is(err, service.ErrSizeNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_SIZE_NOT_EXISTS)
		case errors.Is(err, service.ErrStockNotEnough):
			app.Fail(c, http.StatusConflict, e.ERROR_STOCK_NOT_ENOUGH)
		default:
			logger.Error("cart add failed", "error", err)
			app.Fail(c, http.StatusInternalServerError, e.ERROR)
		}
		return
	}
	app.OK(c, entry)
}

// Reduce POST /cart/reduce
func (h *CartHandler) Reduce(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.cart.Reduce(c.Request.Context(), middleware.GetCartSession(c), req.ProductID, req.SizeID); err != nil {
		logger.Error("cart reduce failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

// Remove POST /cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.cart.Remove(c.Request.Context(), middleware.GetCartSession(c), req.ProductID, req.SizeID); err != nil {
		logger.Error("cart remove failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

// Show GET /cart
func (h *CartHandler) Show(c *gin.Context) {
	lines, total, err := h.cart.Materialize(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		logger.Error("cart show failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, gin.H{"lines": lines, "total": total})
}

// Count GET /cart/count
func (h *CartHandler) Count(c *gin.Context) {
	count, err := h.cart.Count(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		logger.Error("cart count failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, gin.H{"count": count})
}

type applyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyDiscount POST /cart/discount previews a code against the live cart
// total before checkout.
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var req applyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	_, total, err := h.cart.Materialize(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		logger.Error("cart materialize failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	if total == 0 {
		app.Fail(c, http.StatusBadRequest, e.ERROR_CART_EMPTY)
		return
	}

	quote, err := h.discount.QuoteForCart(c.Request.Context(), req.Code, total)
	if err != nil {
		if errors.Is(err, service.ErrDiscountInvalid) {
			app.Fail(c, http.StatusBadRequest, e.ERROR_DISCOUNT_INVALID)
			return
		}
		logger.Error("discount quote failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, quote)
}

// InstallmentOffer GET /cart/installment-offer shows SnappPay eligibility and
// promo copy for the current cart total.
func (h *CartHandler) InstallmentOffer(c *gin.Context) {
	_, total, err := h.cart.Materialize(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		logger.Error("cart materialize failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	if total == 0 {
		app.Fail(c, http.StatusBadRequest, e.ERROR_CART_EMPTY)
		return
	}

	info, err := h.checkout.InstallmentOffer(c.Request.Context(), total)
	if err != nil {
		logger.Error("installment offer failed", "error", err)
		app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		return
	}
	app.OK(c, info)
}
