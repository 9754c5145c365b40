package files

import (
	"errors"
	"io"
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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/files/:name", h.download)

	protected.POST("/files", h.upload)
	protected.DELETE("/files/:name", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if header.Size > MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	name, err := RandomName(contentType)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only images and PDFs are accepted"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	f := &File{
		Name:        name,
		OwnerID:     identityID,
		ContentType: contentType,
		Data:        data,
	}
	if err := h.store.Save(c.Request.Context(), f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": f.Name})
}

func (h *Handler) download(c *gin.Context) {
	f, err := h.store.Get(c.Request.Context(), c.Param("name"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load file"})
		return
	}

	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (h *Handler) delete(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Delete(c.Request.Context(), c.Param("name"), identityID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "file removed"})
}
