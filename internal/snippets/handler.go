package snippets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duyng2512/devmeet/internal/middleware"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes wires the snippet endpoints. Snippets are private to their
// owner, so everything requires authentication.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/code", h.create)
	protected.GET("/code", h.list)
	protected.GET("/code/:snippet_id", h.get)
	protected.DELETE("/code/:snippet_id", h.delete)
}

type createSnippetRequest struct {
	Content     string `json:"content" binding:"required"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

func (h *Handler) create(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req createSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "content is required"})
		return
	}

	sn, err := h.store.Create(c.Request.Context(), &Snippet{
		OwnerID:     identityID,
		Content:     req.Content,
		Description: req.Description,
		Language:    req.Language,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create snippet"})
		return
	}
	c.JSON(http.StatusCreated, sn)
}

func (h *Handler) list(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	out, err := h.store.ListByOwner(c.Request.Context(), identityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list snippets"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	sn, err := h.store.Get(c.Request.Context(), c.Param("snippet_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snippet"})
		return
	}
	if sn.OwnerID != identityID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the snippet owner"})
		return
	}
	c.JSON(http.StatusOK, sn)
}

func (h *Handler) delete(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Delete(c.Request.Context(), c.Param("snippet_id"), identityID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete snippet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "snippet removed"})
}
