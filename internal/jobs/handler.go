package jobs

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/job", h.list)
	public.GET("/job/:job_id", h.get)

	protected.POST("/job", h.create)
	protected.DELETE("/job/:job_id", h.delete)
	protected.PUT("/job/apply/:job_id", h.apply)
}

type createJobRequest struct {
	Company        string   `json:"company" binding:"required"`
	Location       string   `json:"location" binding:"required"`
	Title          string   `json:"title" binding:"required"`
	Remote         string   `json:"remote" binding:"required"`
	EmploymentType string   `json:"employment_type" binding:"required"`
	SalaryMin      *int64   `json:"salary_min"`
	SalaryMax      *int64   `json:"salary_max"`
	SalaryCurrency string   `json:"salary_currency"`
	Description    string   `json:"description" binding:"required"`
	Requirements   string   `json:"requirements"`
	Stack          []string `json:"stack"`
}

func (h *Handler) create(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "missing required job fields"})
		return
	}

	job, err := h.store.Create(c.Request.Context(), &Job{
		PosterID:       identityID,
		Company:        req.Company,
		Location:       req.Location,
		Title:          req.Title,
		Remote:         req.Remote,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.SalaryCurrency,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Stack:          req.Stack,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) list(c *gin.Context) {
	jobs, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.store.Get(c.Request.Context(), c.Param("job_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) delete(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	job, err := h.store.Get(c.Request.Context(), c.Param("job_id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	if job.PosterID != identityID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the job poster"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), job.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "job removed"})
}

func (h *Handler) apply(c *gin.Context) {
	identityID, _ := middleware.IdentityFromContext(c.Request.Context())

	err := h.store.Apply(c.Request.Context(), c.Param("job_id"), identityID)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, ErrAlreadyApplied):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already applied"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "applied"})
	}
}
