package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// jobService handles careers-page reads.
type jobService struct {
	db *gorm.DB
}

// NewJobService creates a new JobServicer.
func NewJobService(db *gorm.DB) JobServicer {
	return &jobService{db: db}
}

// GetJobByID retrieves a job posting with its company.
func (s *jobService) GetJobByID(id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &job, nil
}

// ListJobs retrieves all job postings for the admin console.
func (s *jobService) ListJobs(page pagination.PageRequest, filter JobFilter) (*pagination.PageResponse[models.JobPosting], error) {
	return s.list(s.db.Model(&models.JobPosting{}), page, filter)
}

// ListOpenJobs retrieves open postings for the public careers page.
// Postings past their closing date are excluded even while flagged open.
func (s *jobService) ListOpenJobs(page pagination.PageRequest, filter JobFilter) (*pagination.PageResponse[models.JobPosting], error) {
	base := s.db.Model(&models.JobPosting{}).
		Where("is_open = ?", true).
		Where("closing_date IS NULL OR closing_date >= ?", time.Now())
	return s.list(base, page, filter)
}

func (s *jobService) list(base *gorm.DB, page pagination.PageRequest, filter JobFilter) (*pagination.PageResponse[models.JobPosting], error) {
	page.Defaults()

	if filter.CompanyID != nil {
		base = base.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.EmploymentType != nil {
		base = base.Where("employment_type = ?", *filter.EmploymentType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var jobs []models.JobPosting
	if err := base.Preload("Company").
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&jobs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(jobs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
