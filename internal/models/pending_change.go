package models

import "time"

// EntityType identifies which content table a pending change targets.
type EntityType string

const (
	EntityTypeCompany    EntityType = "COMPANY"
	EntityTypeJob        EntityType = "JOB"
	EntityTypeMedia      EntityType = "MEDIA"
	EntityTypeLeadership EntityType = "LEADERSHIP"
	EntityTypeEvent      EntityType = "EVENT"
	EntityTypeStatistic  EntityType = "STATISTIC"
)

// ChangeAction is the kind of edit a pending change proposes.
type ChangeAction string

const (
	ChangeActionCreate ChangeAction = "CREATE"
	ChangeActionUpdate ChangeAction = "UPDATE"
	ChangeActionDelete ChangeAction = "DELETE"
)

// ChangeStatus is the review state of a pending change. PENDING moves
// exactly once to APPROVED or REJECTED and never back.
type ChangeStatus string

const (
	ChangeStatusPending  ChangeStatus = "PENDING"
	ChangeStatusApproved ChangeStatus = "APPROVED"
	ChangeStatusRejected ChangeStatus = "REJECTED"
)

// PendingChange is a proposed CREATE/UPDATE/DELETE of a content entity,
// held for super-admin review. ChangeData holds the proposed state as a
// JSON document; OriginalData holds the prior state for UPDATE and
// DELETE and is null for CREATE.
type PendingChange struct {
	Base
	EntityType EntityType   `gorm:"not null;index" json:"entity_type"`
	EntityID   *string      `gorm:"type:uuid" json:"entity_id,omitempty"`
	Action     ChangeAction `gorm:"not null" json:"action"`
	Status     ChangeStatus `gorm:"not null;default:PENDING;index" json:"status"`

	SubmittedByID string    `gorm:"type:uuid;not null;index" json:"submitted_by_id"`
	SubmittedBy   *User     `gorm:"foreignKey:SubmittedByID" json:"submitted_by,omitempty"`
	SubmittedAt   time.Time `gorm:"not null" json:"submitted_at"`

	// Review fields are set together by the transition out of PENDING.
	ReviewedByID   *string    `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedBy     *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewComments string     `json:"review_comments,omitempty"`

	ChangeData   string  `gorm:"type:text;not null" json:"change_data"`
	OriginalData *string `gorm:"type:text" json:"original_data,omitempty"`
}

// IsTerminal reports whether the change has left PENDING.
func (p *PendingChange) IsTerminal() bool {
	return p.Status != ChangeStatusPending
}
