package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// mediaService handles media-section reads.
type mediaService struct {
	db *gorm.DB
}

// NewMediaService creates a new MediaServicer.
func NewMediaService(db *gorm.DB) MediaServicer {
	return &mediaService{db: db}
}

// GetMediaByID retrieves a media asset by ID.
func (s *mediaService) GetMediaByID(id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := s.db.Where("id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListMedia retrieves all media assets for the admin console.
func (s *mediaService) ListMedia(mediaType *models.MediaType, page pagination.PageRequest) (*pagination.PageResponse[models.MediaAsset], error) {
	return s.list(s.db.Model(&models.MediaAsset{}), mediaType, page)
}

// ListPublishedMedia retrieves published assets for the public galleries.
func (s *mediaService) ListPublishedMedia(mediaType *models.MediaType, page pagination.PageRequest) (*pagination.PageResponse[models.MediaAsset], error) {
	return s.list(s.db.Model(&models.MediaAsset{}).Where("is_published = ?", true), mediaType, page)
}

func (s *mediaService) list(base *gorm.DB, mediaType *models.MediaType, page pagination.PageRequest) (*pagination.PageResponse[models.MediaAsset], error) {
	page.Defaults()

	if mediaType != nil {
		base = base.Where("type = ?", *mediaType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.MediaAsset
	if err := base.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}
