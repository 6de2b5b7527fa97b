package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rasouli77/ellenovastyle/api/middleware"
	"github.com/Rasouli77/ellenovastyle/internal/service"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payment *service.PaymentService
}

func NewPaymentHandler(payment *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payment: payment}
}

// VerifyZarinpal GET /verify is the bank's redirect target; Authority and
// Status arrive as query parameters.
func (h *PaymentHandler) VerifyZarinpal(c *gin.Context) {
	authority := c.Query("Authority")
	status := c.Query("Status")
	if authority == "" {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	order, err := h.payment.VerifyZarinpal(c.Request.Context(), authority, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_ORDER_NOT_EXISTS)
		case errors.Is(err, service.ErrPaymentFailed):
			app.JSON(c, http.StatusOK, e.ERROR_PAYMENT_FAILED, gin.H{"order": order})
		default:
			logger.Error("zarinpal callback failed", "error", err)
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		}
		return
	}
	app.OK(c, gin.H{"order": order, "ref_id": order.ZarinpalRefID})
}

// SnappPayResult GET /snapppay-result is the installment gateway's redirect
// target. A non-OK state short-circuits to a failed payment.
func (h *PaymentHandler) SnappPayResult(c *gin.Context) {
	paymentToken := c.Query("paymentToken")
	state := c.DefaultQuery("state", "OK")
	if paymentToken == "" {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if state != "OK" {
		app.Fail(c, http.StatusOK, e.ERROR_PAYMENT_FAILED)
		return
	}
	h.verifySnappPay(c, paymentToken)
}

type snappPayVerifyRequest struct {
	PaymentToken string `json:"payment_token" binding:"required"`
}

// SnappPayVerify POST /snapppay-verify re-runs verify and settle for a
// payment token, used when the redirect was lost.
func (h *PaymentHandler) SnappPayVerify(c *gin.Context) {
	var req snappPayVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	h.verifySnappPay(c, req.PaymentToken)
}

func (h *PaymentHandler) verifySnappPay(c *gin.Context, paymentToken string) {
	order, err := h.payment.VerifySnappPay(c.Request.Context(), paymentToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_ORDER_NOT_EXISTS)
		case errors.Is(err, service.ErrPaymentFailed):
			app.JSON(c, http.StatusOK, e.ERROR_GATEWAY_VERIFY, gin.H{"order": order})
		case errors.Is(err, service.ErrGatewaySettle):
			app.JSON(c, http.StatusOK, e.ERROR_GATEWAY_SETTLE, gin.H{"order": order})
		default:
			logger.Error("snapppay verify failed", "error", err)
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		}
		return
	}
	app.OK(c, gin.H{"order": order})
}

// SnappPayCancel POST /snapppay-cancel/:token voids a payment; a paid order
// also gets its stock restored.
func (h *PaymentHandler) SnappPayCancel(c *gin.Context) {
	order, err := h.payment.CancelSnappPay(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_ORDER_NOT_EXISTS)
		case errors.Is(err, service.ErrGatewayCancel):
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY_CANCEL)
		default:
			logger.Error("snapppay cancel failed", "error", err)
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		}
		return
	}
	app.OK(c, gin.H{"order": order})
}

type snappPayUpdateRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// SnappPayUpdate POST /snapppay-update/:order_id shrinks one line of a paid
// installment order and pushes the new amount to the gateway.
func (h *PaymentHandler) SnappPayUpdate(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	var req snappPayUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	order, err := h.payment.UpdateSnappPay(c.Request.Context(), orderID, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_ORDER_NOT_EXISTS)
		case errors.Is(err, service.ErrPaymentMethod):
			app.Fail(c, http.StatusBadRequest, e.ERROR_PAYMENT_METHOD)
		case errors.Is(err, service.ErrGatewayUpdate):
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY_UPDATE)
		default:
			logger.Error("snapppay update failed", "order_id", orderID, "error", err)
			app.Fail(c, http.StatusBadGateway, e.ERROR_GATEWAY)
		}
		return
	}
	app.OK(c, gin.H{"order": order})
}

// ListOrders GET /orders lists the authenticated shopper's orders.
func (h *PaymentHandler) ListOrders(c *gin.Context) {
	orders, err := h.payment.GetUserOrders(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		logger.Error("list orders failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, orders)
}

// GetOrder GET /orders/:id returns one order, owner or staff only.
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	order, err := h.payment.GetOrderForUser(c.Request.Context(), orderID, c.GetInt64(middleware.CtxUserID), c.GetBool(middleware.CtxIsStaff))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			app.Fail(c, http.StatusNotFound, e.ERROR_ORDER_NOT_EXISTS)
		case errors.Is(err, service.ErrOrderForbidden):
			app.Fail(c, http.StatusForbidden, e.ERROR_ORDER_FORBIDDEN)
		default:
			logger.Error("get order failed", "order_id", orderID, "error", err)
			app.Fail(c, http.StatusInternalServerError, e.ERROR)
		}
		return
	}
	app.OK(c, order)
}
