package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// companyService handles company reads. Writes go through the change
// review workflow, not this service.
type companyService struct {
	db *gorm.DB
}

// NewCompanyService creates a new CompanyServicer.
func NewCompanyService(db *gorm.DB) CompanyServicer {
	return &companyService{db: db}
}

// GetCompanyByID retrieves a company by ID.
func (s *companyService) GetCompanyByID(id string) (*models.Company, error) {
	var company models.Company
	if err := s.db.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &company, nil
}

// ListCompanies retrieves all companies for the admin console.
func (s *companyService) ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	return s.list(s.db.Model(&models.Company{}), page)
}

// ListActiveCompanies retrieves active companies for the public site,
// in display order.
func (s *companyService) ListActiveCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	return s.list(s.db.Model(&models.Company{}).Where("is_active = ?", true), page)
}

func (s *companyService) list(base *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	page.Defaults()

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var companies []models.Company
	if err := base.Order("display_order ASC, name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&companies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(companies, page.Page, page.PageSize, totalItems)
	return &result, nil
}
