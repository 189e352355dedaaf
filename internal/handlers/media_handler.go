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

// MediaHandler handles media-section content requests. Writes go
// through the change review workflow.
type MediaHandler struct {
	mediaService  services.MediaServicer
	changeService services.PendingChangeServicer
	auditService  services.AuditServicer
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService services.MediaServicer, changeService services.PendingChangeServicer, auditService services.AuditServicer) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, changeService: changeService, auditService: auditService}
}

// MediaRequest represents the proposed state of a media asset.
type MediaRequest struct {
	Type         string `json:"type" binding:"required,media_type"`
	Title        string `json:"title" binding:"required,max=255"`
	URL          string `json:"url" binding:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
	Caption      string `json:"caption" binding:"max=500"`
	IsPublished  bool   `json:"is_published"`
}

func (r *MediaRequest) snapshot() (string, error) {
	data, err := json.Marshal(models.MediaAsset{
		Type:         models.MediaType(r.Type),
		Title:        r.Title,
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		Caption:      r.Caption,
		IsPublished:  r.IsPublished,
	})
	return string(data), err
}

// ListMedia handles the admin media list
// @Summary     List media assets
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by media type (GALLERY/VIDEO/ALBUM/DOCUMENT)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} models.MediaAsset "Media assets"
// @Router      /media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assets, err := h.mediaService.ListMedia(mediaTypeFromQuery(c), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetMedia handles retrieval of a single media asset
// @Summary     Get media asset
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {object} models.MediaAsset "Media asset"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /media/{id} [get]
func (h *MediaHandler) GetMedia(c *gin.Context) {
	asset, err := h.mediaService.GetMediaByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": asset})
}

// CreateMedia handles a proposed media asset creation
// @Summary     Create media asset
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MediaRequest true "Media details"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /media [post]
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	h.propose(c, models.ChangeActionCreate, nil)
}

// UpdateMedia handles a proposed media asset update
// @Summary     Update media asset
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Param       request body MediaRequest true "Proposed media state"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /media/{id} [put]
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id := c.Param("id")
	h.propose(c, models.ChangeActionUpdate, &id)
}

// DeleteMedia handles a proposed media asset deletion
// @Summary     Delete media asset
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {object} services.ProposalResult "Applied directly"
// @Success     202 {object} services.ProposalResult "Filed for review"
// @Router      /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	asset, err := h.mediaService.GetMediaByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := json.Marshal(asset)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeMedia, models.ChangeActionDelete, &id, string(data))
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, models.ChangeActionDelete, models.EntityTypeMedia, result)
	respondProposal(c, result)
}

func (h *MediaHandler) propose(c *gin.Context, action models.ChangeAction, entityID *string) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snapshot, err := req.snapshot()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	result, err := h.changeService.Propose(user, models.EntityTypeMedia, action, entityID, snapshot)
	if err != nil {
		respondWithError(c, err)
		return
	}

	auditProposal(h.auditService, user, c, action, models.EntityTypeMedia, result)
	respondProposal(c, result)
}

// mediaTypeFromQuery parses the optional media type filter.
func mediaTypeFromQuery(c *gin.Context) *models.MediaType {
	raw := c.Query("type")
	if raw == "" {
		return nil
	}
	mt := models.MediaType(raw)
	return &mt
}
