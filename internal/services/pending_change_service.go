package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"oceanlk/internal/diff"
	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// pendingChangeService implements the change review workflow: submission,
// the PENDING -> APPROVED/REJECTED transition, and materialization of
// approved changes against the live content tables.
type pendingChangeService struct {
	db *gorm.DB
}

// NewPendingChangeService creates a new PendingChangeServicer.
func NewPendingChangeService(db *gorm.DB) PendingChangeServicer {
	return &pendingChangeService{db: db}
}

// Submit files a new PENDING change. For UPDATE and DELETE the prior
// state of the target row is captured here as the original snapshot;
// CREATE has no original by definition.
func (s *pendingChangeService) Submit(
	submitter *models.User,
	entityType models.EntityType,
	action models.ChangeAction,
	entityID *string,
	changeData string,
) (*models.PendingChange, error) {
	if !json.Valid([]byte(changeData)) {
		return nil, apperrors.ErrMalformedSnapshot
	}

	var originalData *string
	switch action {
	case models.ChangeActionCreate:
		if entityID != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "entity_id must not be set for CREATE")
		}
	case models.ChangeActionUpdate, models.ChangeActionDelete:
		if entityID == nil || *entityID == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "entity_id is required for UPDATE and DELETE")
		}
		snapshot, err := snapshotEntity(s.db, entityType, *entityID)
		if err != nil {
			return nil, err
		}
		originalData = &snapshot
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown change action")
	}

	change := &models.PendingChange{
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        action,
		Status:        models.ChangeStatusPending,
		SubmittedByID: submitter.ID,
		SubmittedAt:   time.Now(),
		ChangeData:    changeData,
		OriginalData:  originalData,
	}

	if err := s.db.Create(change).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return change, nil
}

// Propose routes a content edit by the submitter's role: super admins
// apply immediately, everyone else goes through review.
func (s *pendingChangeService) Propose(
	submitter *models.User,
	entityType models.EntityType,
	action models.ChangeAction,
	entityID *string,
	changeData string,
) (*ProposalResult, error) {
	if !submitter.IsSuperAdmin() {
		change, err := s.Submit(submitter, entityType, action, entityID, changeData)
		if err != nil {
			return nil, err
		}
		return &ProposalResult{Applied: false, Change: change}, nil
	}

	if !json.Valid([]byte(changeData)) {
		return nil, apperrors.ErrMalformedSnapshot
	}

	change := &models.PendingChange{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ChangeData: changeData,
	}

	var appliedID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		appliedID, txErr = applyChange(tx, change)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return &ProposalResult{Applied: true, EntityID: appliedID}, nil
}

// ListPending returns the privileged review queue: all PENDING changes,
// optionally narrowed to one entity type. The distinct entity types
// across the whole pending set are always reported so clients can build
// the filter option list.
func (s *pendingChangeService) ListPending(entityType *models.EntityType, page pagination.PageRequest) (*PendingQueue, error) {
	page.Defaults()

	base := s.db.Model(&models.PendingChange{}).Where("status = ?", models.ChangeStatusPending)
	if entityType != nil {
		base = base.Where("entity_type = ?", *entityType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var changes []models.PendingChange
	if err := base.Preload("SubmittedBy").
		Order("submitted_at ASC").
		Scopes(pagination.Paginate(page)).
		Find(&changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entityTypes []models.EntityType
	if err := s.db.Model(&models.PendingChange{}).
		Where("status = ?", models.ChangeStatusPending).
		Distinct("entity_type").
		Order("entity_type ASC").
		Pluck("entity_type", &entityTypes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &PendingQueue{
		PageResponse: pagination.NewPageResponse(changes, page.Page, page.PageSize, totalItems),
		EntityTypes:  entityTypes,
	}, nil
}

// ListMySubmissions returns one admin's own changes, optionally filtered
// by status, with per-status counts across all of their records.
func (s *pendingChangeService) ListMySubmissions(userID string, status *models.ChangeStatus, page pagination.PageRequest) (*SubmissionList, error) {
	page.Defaults()

	base := s.db.Model(&models.PendingChange{}).Where("submitted_by_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var changes []models.PendingChange
	if err := base.Preload("ReviewedBy").
		Order("submitted_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	counts := map[models.ChangeStatus]int64{
		models.ChangeStatusPending:  0,
		models.ChangeStatusApproved: 0,
		models.ChangeStatusRejected: 0,
	}
	rows := []struct {
		Status models.ChangeStatus
		Count  int64
	}{}
	if err := s.db.Model(&models.PendingChange{}).
		Select("status, count(*) as count").
		Where("submitted_by_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return &SubmissionList{
		PageResponse: pagination.NewPageResponse(changes, page.Page, page.PageSize, totalItems),
		StatusCounts: counts,
	}, nil
}

// GetByID retrieves a change with its submitter and reviewer.
func (s *pendingChangeService) GetByID(changeID string) (*models.PendingChange, error) {
	var change models.PendingChange
	if err := s.db.Preload("SubmittedBy").Preload("ReviewedBy").
		Where("id = ?", changeID).First(&change).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChangeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &change, nil
}

// Diff computes the field comparison for a change.
func (s *pendingChangeService) Diff(changeID string) (*diff.Result, error) {
	change, err := s.GetByID(changeID)
	if err != nil {
		return nil, err
	}
	return diff.Compute(change.Action, change.OriginalData, &change.ChangeData), nil
}

// Approve transitions a PENDING change to APPROVED and materializes it
// against the live entity table, atomically. A failed materialization
// rolls back the status transition so the record stays PENDING.
func (s *pendingChangeService) Approve(changeID string, reviewer *models.User, comments string) (*models.PendingChange, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		change, txErr := s.transition(tx, changeID, reviewer, models.ChangeStatusApproved, comments)
		if txErr != nil {
			return txErr
		}
		_, txErr = applyChange(tx, change)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(changeID)
}

// Reject transitions a PENDING change to REJECTED. A non-empty review
// comment is required and checked before any database write; nothing
// is materialized.
func (s *pendingChangeService) Reject(changeID string, reviewer *models.User, comments string) (*models.PendingChange, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, apperrors.ErrEmptyReviewComment
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, txErr := s.transition(tx, changeID, reviewer, models.ChangeStatusRejected, comments)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(changeID)
}

// transition performs the one-way PENDING -> terminal update. The status
// guard lives in the WHERE clause, so a racing second reviewer loses
// with a conflict instead of overwriting the first decision.
func (s *pendingChangeService) transition(
	tx *gorm.DB,
	changeID string,
	reviewer *models.User,
	status models.ChangeStatus,
	comments string,
) (*models.PendingChange, error) {
	now := time.Now()
	result := tx.Model(&models.PendingChange{}).
		Where("id = ? AND status = ?", changeID, models.ChangeStatusPending).
		Updates(map[string]interface{}{
			"status":          status,
			"reviewed_by_id":  reviewer.ID,
			"reviewed_at":     now,
			"review_comments": comments,
		})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing record from an already-reviewed one.
		var count int64
		if err := tx.Model(&models.PendingChange{}).Where("id = ?", changeID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrChangeNotFound
		}
		return nil, apperrors.ErrChangeNotPending
	}

	var change models.PendingChange
	if err := tx.Where("id = ?", changeID).First(&change).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &change, nil
}
