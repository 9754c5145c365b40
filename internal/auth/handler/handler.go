package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duyng2512/devmeet/internal/auth/credentials"
	"github.com/duyng2512/devmeet/internal/auth/provider"
	"github.com/duyng2512/devmeet/internal/auth/reconcile"
	"github.com/duyng2512/devmeet/internal/auth/token"
	"github.com/duyng2512/devmeet/internal/identity"
	"github.com/duyng2512/devmeet/internal/middleware"
)

type Handler struct {
	providers   *provider.Registry
	states      *StateStore
	reconciler  *reconcile.Reconciler
	credentials *credentials.Service
	tokens      *token.Service
	identities  identity.Store
}

func NewHandler(
	registry *provider.Registry,
	states *StateStore,
	reconciler *reconcile.Reconciler,
	credentialService *credentials.Service,
	tokens *token.Service,
	identities identity.Store,
) *Handler {
	return &Handler{
		providers:   registry,
		states:      states,
		reconciler:  reconciler,
		credentials: credentialService,
		tokens:      tokens,
		identities:  identities,
	}
}

// RegisterPublicRoutes wires the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(r *gin.Engine) {
	r.POST("/api/users", h.Register)
	r.POST("/api/auth", h.Login)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

// Me returns the authenticated identity, password hash stripped.
func (h *Handler) Me(c *gin.Context) {
	identityID, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ident, err := h.identities.FindByID(c.Request.Context(), identityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load identity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         ident.ID,
		"email":      ident.Email,
		"name":       ident.Name,
		"avatar_url": ident.AvatarURL,
		"created_at": ident.CreatedAt,
	})
}

func isDuplicate(err error) bool {
	return errors.Is(err, identity.ErrDuplicateEmail) ||
		errors.Is(err, identity.ErrDuplicateExternalID)
}
