package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duyng2512/devmeet/internal/logger"
)

// oauthLogin starts the redirect handshake for the named provider.
func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	state, codeChallenge, err := h.states.Begin(c.Request.Context(), providerName)
	if err != nil {
		logger.Error("failed to begin oauth flow", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oauth flow error"})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// oauthCallback finishes the handshake: validate state, exchange the code,
// reconcile the assertion to a local identity, and return a token.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	fs, err := h.states.Consume(c.Request.Context(), c.Query("state"))
	if err != nil || fs.Provider != providerName {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication declined"})
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	assertion, err := p.ExchangeCode(c.Request.Context(), code, fs.CodeVerifier)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	ident, err := h.reconciler.Reconcile(c.Request.Context(), *assertion)
	if err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve identity"})
		return
	}

	raw, err := h.tokens.Issue(ident.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	logger.Info("oauth login succeeded", map[string]any{
		"provider":    providerName,
		"identity_id": ident.ID,
	})

	c.JSON(http.StatusOK, gin.H{"token": raw})
}
