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

type BlogHandler struct {
	blog *service.BlogService
}

func NewBlogHandler(blog *service.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// ListPosts GET /blog?page=
func (h *BlogHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))

	result, err := h.blog.ListPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error("list posts failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, result)
}

// GetPost GET /blog/:slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	detail, err := h.blog.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_BLOG_NOT_EXISTS)
			return
		}
		logger.Error("get post failed", "slug", c.Param("slug"), "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, detail)
}

type addCommentRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Comment     string `json:"comment" binding:"required"`
}

// AddComment POST /blog/:slug/comments queues a comment for moderation.
func (h *BlogHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.Fail(c, http.StatusBadRequest, e.INVALID_PARAMS)
		return
	}
	if err := h.blog.AddComment(c.Request.Context(), c.Param("slug"), req.Name, req.PhoneNumber, req.Comment); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			app.Fail(c, http.StatusNotFound, e.ERROR_BLOG_NOT_EXISTS)
			return
		}
		logger.Error("add comment failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, nil)
}

// Search GET /blog-search?q=
func (h *BlogHandler) Search(c *gin.Context) {
	posts, err := h.blog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("blog search failed", "error", err)
		app.Fail(c, http.StatusInternalServerError, e.ERROR)
		return
	}
	app.OK(c, posts)
}
