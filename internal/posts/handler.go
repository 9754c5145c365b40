package posts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duyng2512/devmeet/internal/identity"
	"github.com/duyng2512/devmeet/internal/middleware"
)

type Handler struct {
	store      *Store
	identities identity.Store
}

func NewHandler(store *Store, identities identity.Store) *Handler {
	return &Handler{store: store, identities: identities}
}

// RegisterRoutes wires the feed endpoints. Reads are public; writes require
// an authenticated identity.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts", h.list)
	public.GET("/posts/:post_id", h.get)

	protected.POST("/posts", h.create)
	protected.DELETE("/posts/:post_id", h.delete)
	protected.PUT("/posts/like/:post_id", h.like)
	protected.PUT("/posts/unlike/:post_id", h.unlike)
	protected.POST("/posts/comment/:post_id", h.comment)
	protected.DELETE("/posts/comment/:post_id/:comment_id", h.deleteComment)
}

type createPostRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "post can not be empty"})
		return
	}

	ident, err := h.identities.FindByID(c.Request.Context(), identityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load identity"})
		return
	}

	post, err := h.store.Create(c.Request.Context(), &Post{
		AuthorID:     ident.ID,
		AuthorName:   ident.Name,
		AuthorAvatar: ident.AvatarURL,
		Body:         req.Body,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) list(c *gin.Context) {
	posts, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.store.Get(c.Request.Context(), c.Param("post_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) delete(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	post, err := h.store.Get(c.Request.Context(), c.Param("post_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	if post.AuthorID != identityID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the post author"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "post removed"})
}

func (h *Handler) like(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Like(c.Request.Context(), c.Param("post_id"), identityID)
	switch {
	case errors.Is(err, ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "post already liked"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like post"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "liked"})
	}
}

func (h *Handler) unlike(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Unlike(c.Request.Context(), c.Param("post_id"), identityID)
	switch {
	case errors.Is(err, ErrNotLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "post not liked yet"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unlike post"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "unliked"})
	}
}

func (h *Handler) comment(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "comment can not be empty"})
		return
	}

	ident, err := h.identities.FindByID(c.Request.Context(), identityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load identity"})
		return
	}

	cm, err := h.store.AddComment(c.Request.Context(), &Comment{
		PostID:       c.Param("post_id"),
		AuthorID:     ident.ID,
		AuthorName:   ident.Name,
		AuthorAvatar: ident.AvatarURL,
		Body:         req.Body,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, cm)
}

func (h *Handler) deleteComment(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.DeleteComment(
		c.Request.Context(),
		c.Param("post_id"),
		c.Param("comment_id"),
		identityID,
	)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "comment removed"})
}
