package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rasouli77/ellenovastyle/internal/service"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/e"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts GET /products?page=&page_size=&order=old
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "24"))
	oldFirst := c.Query("order") == "old"

	result, err := h.catalog.ListProducts(c.Request.Context(), page, pageSize, oldFirst)
	if err != nil {
		logger.Error("list products failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, result)
}

// ListByCategory GET /category/:title?page=&order=old&filter=
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "24"))
	oldFirst := c.Query("order") == "old"

	category, result, err := h.catalog.ListByCategory(c.Request.Context(), c.Param("title"), page, pageSize, oldFirst, c.Query("filter"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_PRODUCT_NOT_EXISTS)
			return
		}
		logger.Error("list category failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, gin.H{"category": category, "page": result})
}

// LoadMore GET /products/load-more?offset=&limit=
func (h *CatalogHandler) LoadMore(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	products, err := h.catalog.LoadMore(c.Request.Context(), offset, limit)
	if err != nil {
		logger.Error("load more failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, products)
}

// GetProduct GET /product/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	detail, err := h.catalog.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_PRODUCT_NOT_EXISTS)
			return
		}
		logger.Error("get product failed", "slug", c.Param("slug"), "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, detail)
}

// Search GET /search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	products, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("search failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, products)
}

// ListCategories GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error("list categories failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, categories)
}

// CreateProduct POST /vendor/products (staff)
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		logger.Error("create product failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, product)
}

type updateProductRequest struct {
	SeoTitle   *string `json:"seo_title"`
	Meta       *string `json:"meta"`
	Content    *string `json:"content"`
	Image      *string `json:"image"`
	Status     *bool   `json:"status"`
	CategoryID *int64  `json:"category_id"`
	Glass      *string `json:"glass"`
	Frame      *string `json:"frame"`
	Color      *string `json:"color"`
}

// UpdateProduct PATCH /vendor/products/:id (staff)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	updates := map[string]interface{}{}
	setIf := func(key string, value interface{}, ok bool) {
		if ok {
			updates[key] = value
		}
	}
	setIf("seo_title", derefStr(req.SeoTitle), req.SeoTitle != nil)
	setIf("meta", derefStr(req.Meta), req.Meta != nil)
	setIf("content", derefStr(req.Content), req.Content != nil)
	setIf("image", derefStr(req.Image), req.Image != nil)
	setIf("glass", derefStr(req.Glass), req.Glass != nil)
	setIf("frame", derefStr(req.Frame), req.Frame != nil)
	setIf("color", derefStr(req.Color), req.Color != nil)
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if len(updates) == 0 {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	if err := h.catalog.UpdateProduct(c.Request.Context(), id, updates); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_PRODUCT_NOT_EXISTS)
			return
		}
		logger.Error("update product failed", "product_id", id, "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

type updateSizeRequest struct {
	Price           int  `json:"price"`
	Stock           int  `json:"stock"`
	DiscountPercent *int `json:"discount_percent"`
	ClearPercent    bool `json:"clear_percent"`
}

// UpdateSize PATCH /vendor/sizes/:id (staff)
func (h *CatalogHandler) UpdateSize(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	req := updateSizeRequest{Stock: -1}
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}

	size, err := h.catalog.UpdateSize(c.Request.Context(), id, req.Price, req.Stock, req.DiscountPercent, req.ClearPercent)
	if err != nil {
		if errors.Is(err, service.ErrSizeNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_SIZE_NOT_EXISTS)
			return
		}
		logger.Error("update size failed", "size_id", id, "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, size)
}

// DeleteProduct DELETE /vendor/products/:id (staff)
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_PRODUCT_NOT_EXISTS)
			return
		}
		logger.Error("delete product failed", "product_id", id, "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
