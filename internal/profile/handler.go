package profile

import (
	"errors"
	"net/http"
	"time"

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
	public.GET("/profile", h.list)
	public.GET("/profile/user/:identity_id", h.get)

	protected.GET("/profile/me", h.me)
	protected.POST("/profile", h.upsert)
	protected.DELETE("/profile", h.delete)
	protected.PUT("/profile/experience", h.addExperience)
	protected.DELETE("/profile/experience/:exp_id", h.removeExperience)
	protected.PUT("/profile/education", h.addEducation)
	protected.DELETE("/profile/education/:edu_id", h.removeEducation)
}

type upsertRequest struct {
	Status         string            `json:"status" binding:"required"`
	Skills         []string          `json:"skills" binding:"required"`
	Company        string            `json:"company"`
	Website        string            `json:"website"`
	Location       string            `json:"location"`
	Bio            string            `json:"bio"`
	GithubUsername string            `json:"github_username"`
	Links          map[string]string `json:"links"`
}

func (h *Handler) upsert(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status and skills are required"})
		return
	}
	if req.Links == nil {
		req.Links = map[string]string{}
	}

	p := &Profile{
		IdentityID:     identityID,
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Links:          req.Links,
	}
	if err := h.store.Upsert(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "profile saved"})
}

func (h *Handler) me(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())
	h.respondWithProfile(c, identityID)
}

func (h *Handler) get(c *gin.Context) {
	h.respondWithProfile(c, c.Param("identity_id"))
}

func (h *Handler) respondWithProfile(c *gin.Context, identityID string) {
	p, err := h.store.Get(c.Request.Context(), identityID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) list(c *gin.Context) {
	profiles, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) delete(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Delete(c.Request.Context(), identityID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "profile removed"})
}

type experienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (h *Handler) addExperience(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title, company and from are required"})
		return
	}

	e, err := h.store.AddExperience(c.Request.Context(), identityID, &Experience{
		Title:       req.Title,
		Company:     req.Company,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add experience"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) removeExperience(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.RemoveExperience(c.Request.Context(), identityID, c.Param("exp_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "experience not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove experience"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "experience removed"})
}

type educationRequest struct {
	School  string     `json:"school" binding:"required"`
	Degree  string     `json:"degree" binding:"required"`
	From    time.Time  `json:"from" binding:"required"`
	To      *time.Time `json:"to"`
	Current bool       `json:"current"`
	GPA     *float64   `json:"gpa"`
}

func (h *Handler) addEducation(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "school, degree and from are required"})
		return
	}

	e, err := h.store.AddEducation(c.Request.Context(), identityID, &Education{
		School:  req.School,
		Degree:  req.Degree,
		From:    req.From,
		To:      req.To,
		Current: req.Current,
		GPA:     req.GPA,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add education"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) removeEducation(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.RemoveEducation(c.Request.Context(), identityID, c.Param("edu_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "education not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove education"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "education removed"})
}
