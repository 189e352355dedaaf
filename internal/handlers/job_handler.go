package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// JobHandler handles careers content requests. Writes go through the
// change review workflow.
type JobHandler struct {
	jobService    services.JobServicer
	changeService services.PendingChangeServicer
	auditService  services.AuditServicer
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService services.JobServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *JobHandler {
	return &JobHandler{jobService: jobService, changeService: changeService, auditService: auditService}
}

// JobRequest represents the proposed state of a job posting.
type JobRequest struct {
	CompanyID      *string    `json:"company_id"`
	Title          string     `json:"title" binding:"required,max=255"`
	Department     string     `json:"department" binding:"max=255"`
	Location       string     `json:"location" binding:"max=255"`
	EmploymentType string     `json:"employment_type" binding:"required,employment_type"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements"`
	ClosingDate    *time.Time `json:"closing_date"`
	IsOpen         *bool      `json:"is_open"`
}

// snapshot marshals the proposed state. An omitted is_open means the
// posting accepts applications.
func (r *JobRequest) snapshot() (string, error) {
	isOpen := true
	if r.IsOpen != nil {
		isOpen = *r.IsOpen
	}
	data, err := json.Marshal(models.JobPosting{
		CompanyID:      r.CompanyID,
		Title:          r.Title,
		Department:     r.Department,
		Location:       r.Location,
		EmploymentType: models.EmploymentType(r.EmploymentType),
		Description:    r.Description,
		Requirements:   r.Requirements,
		ClosingDate:    r.ClosingDate,
		IsOpen:         isOpen,
	})
	return string(data), err
}

// ListJobs handles the admin job posting list
// @Summary     List job postings
// @Tags        jobs
// @Produce     json
// @Security    BearerAuth
// @Param       company_id query string false "Filter by company"
// @Param       employment_type query string false "Filter by employment type"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.JobPosting "Job postings"
// @Router      /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	jobs, err := h.jobService.ListJobs(page, jobFilterFromQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob handles retrieval of a single job posting
// @Summary     Get job posting
// @Tags        jobs
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Job ID"
// @Success     200 {object} models.JobPosting "Job posting"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJobByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// CreateJob handles a proposed job posting creation
// @Summary     Create job posting
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JobRequest true "Job details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateJob handles a proposed job posting update
// @Summary     Update job posting
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Job ID"
// @Param       request body JobRequest true "Proposed job state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteJob handles a proposed job posting deletion
// @Summary     Delete job posting
// @Tags        jobs
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Job ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	job, err := h.jobService.GetJobByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := json.Marshal(job)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeJob, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeJob, result)
	respondProposal(c, result)
}

func (h *JobHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeJob, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeJob, result)
	respondProposal(c, result)
}

// jobFilterFromQuery builds the optional job list filters from query parameters.
func jobFilterFromQuery(c *gin.Context) services.JobFilter {
	var filter services.JobFilter
	if companyID := c.Query("company_id"); companyID != "" {
		filter.CompanyID = &companyID
	}
	if raw := c.Query("employment_type"); raw != "" {
		et := models.EmploymentType(raw)
		filter.EmploymentType = &et
	}
	return filter
}
