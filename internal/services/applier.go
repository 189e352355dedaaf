package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
)

// record is the common surface of all content models: a Base with a
// UUID primary key.
type record interface {
	GetID() string
	SetID(id string)
}

// newRecord returns an empty model for an entity type. The switch is
// the closed dispatch point: adding an entity type without extending it
// fails every change against that type with ErrUnknownEntityType.
func newRecord(entityType models.EntityType) (record, error) {
	switch entityType {
	case models.EntityTypeCompany:
		return &models.Company{}, nil
	case models.EntityTypeJob:
		return &models.JobPosting{}, nil
	case models.EntityTypeMedia:
		return &models.MediaAsset{}, nil
	case models.EntityTypeLeadership:
		return &models.LeadershipProfile{}, nil
	case models.EntityTypeEvent:
		return &models.Event{}, nil
	case models.EntityTypeStatistic:
		return &models.Statistic{}, nil
	default:
		return nil, apperrors.ErrUnknownEntityType
	}
}

// notFoundError maps an entity type to its domain not-found sentinel.
func notFoundError(entityType models.EntityType) *apperrors.AppError {
	switch entityType {
	case models.EntityTypeCompany:
		return apperrors.ErrCompanyNotFound
	case models.EntityTypeJob:
		return apperrors.ErrJobNotFound
	case models.EntityTypeMedia:
		return apperrors.ErrMediaNotFound
	case models.EntityTypeLeadership:
		return apperrors.ErrLeadershipNotFound
	case models.EntityTypeEvent:
		return apperrors.ErrEventNotFound
	case models.EntityTypeStatistic:
		return apperrors.ErrStatisticNotFound
	default:
		return apperrors.ErrNotFound
	}
}

// snapshotEntity serializes the current state of a live row as a JSON
// document, for use as a change's original snapshot.
func snapshotEntity(db *gorm.DB, entityType models.EntityType, entityID string) (string, error) {
	target, err := newRecord(entityType)
	if err != nil {
		return "", err
	}
	if err := db.Where("id = ?", entityID).First(target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundError(entityType)
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	data, err := json.Marshal(target)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return string(data), nil
}

// applyChange materializes a change against the live entity table inside
// the caller's transaction and returns the affected entity ID. CREATE
// inserts the proposed state, UPDATE overlays it onto the existing row,
// DELETE removes the row; the DELETE snapshot is display-only and never
// reapplied.
func applyChange(tx *gorm.DB, change *models.PendingChange) (string, error) {
	target, err := newRecord(change.EntityType)
	if err != nil {
		return "", err
	}

	switch change.Action {
	case models.ChangeActionCreate:
		if err := json.Unmarshal([]byte(change.ChangeData), target); err != nil {
			return "", apperrors.Wrap(apperrors.ErrMalformedSnapshot, err)
		}
		// A fresh primary key, even if the snapshot carried an id field.
		target.SetID("")
		if err := tx.Create(target).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return target.GetID(), nil

	case models.ChangeActionUpdate:
		if change.EntityID == nil || *change.EntityID == "" {
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "entity_id is required for UPDATE")
		}
		if err := tx.Where("id = ?", *change.EntityID).First(target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", notFoundError(change.EntityType)
			}
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := json.Unmarshal([]byte(change.ChangeData), target); err != nil {
			return "", apperrors.Wrap(apperrors.ErrMalformedSnapshot, err)
		}
		target.SetID(*change.EntityID)
		if err := tx.Save(target).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return *change.EntityID, nil

	case models.ChangeActionDelete:
		if change.EntityID == nil || *change.EntityID == "" {
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "entity_id is required for DELETE")
		}
		result := tx.Where("id = ?", *change.EntityID).Delete(target)
		if result.Error != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return "", notFoundError(change.EntityType)
		}
		return *change.EntityID, nil

	default:
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown change action")
	}
}
