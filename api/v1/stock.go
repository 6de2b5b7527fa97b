package v1

import (
	"errors"
	"net/http"

	"github.com/Rasouli77/ellenovastyle/internal/service"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/gin-gonic/gin"
)

// StockHandler serves the inbound machine endpoints the external inventory
// system calls; each is guarded by its own static API key.
type StockHandler struct {
	stock *service.StockService
}

func NewStockHandler(stock *service.StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

type updateStockRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Stock       *int   `json:"stock" binding:"required"`
}

// UpdateStock POST /api/update-stock/ overwrites a size's stock.
func (h *StockHandler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.stock.SetStockByCode(c.Request.Context(), req.ProductCode, *req.Stock); err != nil {
		if errors.Is(err, service.ErrSizeNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_SIZE_NOT_EXISTS)
			return
		}
		logger.Error("inbound stock update failed", "product_code", req.ProductCode, "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

type updatePriceRequest struct {
	ProductCode string `json:"product_code" binding:"required"`
	Price       int    `json:"price" binding:"required"`
}

// UpdatePrice POST /api/update-price/ overwrites a size's price; the derived
// discount price follows.
func (h *StockHandler) UpdatePrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.stock.SetPriceByCode(c.Request.Context(), req.ProductCode, req.Price); err != nil {
		if errors.Is(err, service.ErrSizeNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_SIZE_NOT_EXISTS)
			return
		}
		logger.Error("inbound price update failed", "product_code", req.ProductCode, "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}
