package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/pagination"
	"oceanlk/internal/services"
)

// PublicHandler serves the unauthenticated read endpoints backing the
// corporate site. Only published and active content is exposed here.
type PublicHandler struct {
	companyService    services.CompanyServicer
	jobService        services.JobServicer
	mediaService      services.MediaServicer
	leadershipService services.LeadershipServicer
	eventService      services.EventServicer
	statisticService  services.StatisticServicer
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(
	companyService services.CompanyServicer,
	jobService services.JobServicer,
	mediaService services.MediaServicer,
	leadershipService services.LeadershipServicer,
	eventService services.EventServicer,
	statisticService services.StatisticServicer,
) *PublicHandler {
	return &PublicHandler{
		companyService:    companyService,
		jobService:        jobService,
		mediaService:      mediaService,
		leadershipService: leadershipService,
		eventService:      eventService,
		statisticService:  statisticService,
	}
}

// ListCompanies handles the public company listing
// @Summary     List active companies
// @Tags        public
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Company "Companies"
// @Router      /public/companies [get]
func (h *PublicHandler) ListCompanies(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	companies, err := h.companyService.ListActiveCompanies(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetCompany handles public retrieval of a single company
// @Summary     Get company
// @Tags        public
// @Produce     json
// @Param       id path string true "Company ID"
// @Success     200 {object} models.Company "Company"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /public/companies/{id} [get]
func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// ListJobs handles the public careers listing
// @Summary     List open job postings
// @Tags        public
// @Produce     json
// @Param       company_id query string false "Filter by company"
// @Param       employment_type query string false "Filter by employment type"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.JobPosting "Job postings"
// @Router      /public/jobs [get]
func (h *PublicHandler) ListJobs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	jobs, err := h.jobService.ListOpenJobs(page, jobFilterFromQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob handles public retrieval of a single job posting
// @Summary     Get job posting
// @Tags        public
// @Produce     json
// @Param       id path string true "Job ID"
// @Success     200 {object} models.JobPosting "Job posting"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /public/jobs/{id} [get]
func (h *PublicHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJobByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// ListMedia handles the public media listing
// @Summary     List published media
// @Tags        public
// @Produce     json
// @Param       type query string false "Filter by media type"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.MediaAsset "Media assets"
// @Router      /public/media [get]
func (h *PublicHandler) ListMedia(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	media, err := h.mediaService.ListPublishedMedia(mediaTypeFromQuery(c), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// ListLeadership handles the public leadership listing
// @Summary     List leadership profiles
// @Tags        public
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.LeadershipProfile "Leadership profiles"
// @Router      /public/leadership [get]
func (h *PublicHandler) ListLeadership(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profiles, err := h.leadershipService.ListProfiles(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ListEvents handles the public news and events listing
// @Summary     List published events
// @Tags        public
// @Produce     json
// @Param       upcoming query bool false "Only events starting after now"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Event "Events"
// @Router      /public/events [get]
func (h *PublicHandler) ListEvents(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var after *time.Time
	if c.Query("upcoming") == "true" {
		now := time.Now()
		after = &now
	}

	events, err := h.eventService.ListPublishedEvents(after, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles public retrieval of a single event
// @Summary     Get event
// @Tags        public
// @Produce     json
// @Param       id path string true "Event ID"
// @Success     200 {object} models.Event "Event"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /public/events/{id} [get]
func (h *PublicHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEventByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ListStatistics handles the public culture-page statistics
// @Summary     List statistics
// @Tags        public
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.Statistic "Statistics"
// @Router      /public/statistics [get]
func (h *PublicHandler) ListStatistics(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stats, err := h.statisticService.ListStatistics(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
