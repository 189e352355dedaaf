package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// CompanyHandler handles company content requests. Writes go through
// the change review workflow.
type CompanyHandler struct {
	companyService services.CompanyServicer
	changeService  services.PendingChangeServicer
	auditService   services.AuditServicer
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService services.CompanyServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, changeService: changeService, auditService: auditService}
}

// CompanyRequest represents the proposed state of a company for
// create and update calls.
type CompanyRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Sector       string `json:"sector" binding:"max=255"`
	Tagline      string `json:"tagline" binding:"max=500"`
	Description  string `json:"description"`
	Website      string `json:"website" binding:"omitempty,url"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// snapshot marshals the proposed state. An omitted is_active means the
// company is visible on the public site.
func (r *CompanyRequest) snapshot() (string, error) {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	data, err := json.Marshal(models.Company{
		Name:         r.Name,
		Sector:       r.Sector,
		Tagline:      r.Tagline,
		Description:  r.Description,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		DisplayOrder: r.DisplayOrder,
		IsActive:     isActive,
	})
	return string(data), err
}

// ListCompanies handles the admin company list
// @Summary     List companies
// @Tags        companies
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Company "Companies"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	companies, err := h.companyService.ListCompanies(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetCompany handles retrieval of a single company
// @Summary     Get company
// @Tags        companies
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} models.Company "Company"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// CreateCompany handles a proposed company creation
// @Summary     Create company
// @Description Create a company directly (super admin) or file it for review
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CompanyRequest true "Company details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateCompany handles a proposed company update
// @Summary     Update company
// @Description Update a company directly (super admin) or file the edit for review
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Param       request body CompanyRequest true "Proposed company state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteCompany handles a proposed company deletion
// @Summary     Delete company
// @Description Delete a company directly (super admin) or file the removal for review
// @Tags        companies
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Company ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	company, err := h.companyService.GetCompanyByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The DELETE snapshot captures the entity being removed, for display
	// in the review queue only.
	data, err := json.Marshal(company)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeCompany, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeCompany, result)
	respondProposal(c, result)
}

func (h *CompanyHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeCompany, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeCompany, result)
	respondProposal(c, result)
}
