package http

import (
	"errors"
	"net/http"

	"github.com/balcaohq/backend/internal/domain"
	"github.com/balcaohq/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	auth    *usecase.AuthService
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(auth *usecase.AuthService, catalog *usecase.CatalogService) *Handler {
	return &Handler{
		auth:    auth,
		catalog: catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "balcao-backend",
		"version": "1.0.0",
	})
}

// InitiateLogin starts an ERP authorization flow and returns the URL the
// user must visit.
func (h *Handler) InitiateLogin(c *gin.Context) {
	loginURL, err := h.auth.BuildLoginURL(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authorization_url": loginURL})
}

// LoginCallback handles the ERP authorization redirect and exchanges the
// code for an access token.
func (h *Handler) LoginCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	record, err := h.auth.CompleteLogin(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCode), errors.Is(err, domain.ErrStateMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUpstreamRejected), errors.Is(err, domain.ErrNoTokenReturned):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "authenticated",
		"refresh_token": record.RefreshToken != "",
	})
}

// TokenStatus reports whether an ERP access token is stored.
func (h *Handler) TokenStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": h.auth.TokenStatus(c.Request.Context()),
	})
}

// Logout clears the stored ERP token.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// SearchProduct matches the catalog against the requested product name.
func (h *Handler) SearchProduct(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "produto is required"})
		return
	}

	result, err := h.catalog.SearchProduct(c.Request.Context(), req.Produto)
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DescribeProduct matches the catalog and narrates the result.
func (h *Handler) DescribeProduct(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "produto is required"})
		return
	}

	result, description, err := h.catalog.DescribeProduct(c.Request.Context(), req.Produto)
	if err != nil {
		h.renderCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome":     result.Outcome,
		"lines":       result.Lines,
		"description": description,
	})
}

// renderCatalogError maps catalog errors to HTTP status codes. Auth
// problems carry a hint to repeat the login flow.
func (h *Handler) renderCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrTokenRejected):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
			"hint":  "repeat the ERP login at /auth/login",
		})
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
