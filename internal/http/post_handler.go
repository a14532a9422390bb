package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/service"
)

// PostHandler mantiene dependencias para los endpoints de posts.
type PostHandler struct {
	logger *zap.Logger
	posts  *service.PostService
}

// NewPostHandler crea una instancia de PostHandler.
func NewPostHandler(logger *zap.Logger, posts *service.PostService) *PostHandler {
	return &PostHandler{logger: logger, posts: posts}
}

type postURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// List maneja GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	var query struct {
		Page  int `form:"page,default=1" binding:"min=1"`
		Limit int `form:"limit,default=10" binding:"min=1,max=100"`
	}
	if !bindQuery(c, &query) {
		return
	}

	page, err := h.posts.List(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		respondServiceError(c, h.logger, "list posts", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Posts fetched successfully", page)
}

// Get maneja GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	var uri postURI
	if !bindURI(c, &uri) {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), uri.ID)
	if err != nil {
		respondServiceError(c, h.logger, "get post", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Post fetched successfully", post)
}

// Create maneja POST /posts.
func (h *PostHandler) Create(c *gin.Context) {
	callerID, ok := CallerID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		Title   string `json:"title" binding:"required,max=255"`
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), callerID, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, h.logger, "create post", err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Post created successfully", post)
}

// Update maneja PATCH /posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	callerID, ok := CallerID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var uri postURI
	if !bindURI(c, &uri) {
		return
	}
	var req struct {
		Title   *string `json:"title" binding:"omitnil,min=1,max=255"`
		Content *string `json:"content" binding:"omitnil,min=1"`
	}
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Update(c.Request.Context(), callerID, uri.ID, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, h.logger, "update post", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Post updated successfully", post)
}

// Delete maneja DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	callerID, ok := CallerID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var uri postURI
	if !bindURI(c, &uri) {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), callerID, uri.ID); err != nil {
		respondServiceError(c, h.logger, "delete post", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Post deleted successfully", nil)
}
