package services

import (
	"time"

	"oceanlk/internal/diff"
	"oceanlk/internal/models"
	"oceanlk/internal/pagination"
)

// ProposalResult reports how a content edit was routed: applied directly
// by a super admin, or filed as a pending change for review.
type ProposalResult struct {
	Applied  bool                  `json:"applied"`
	EntityID string                `json:"entity_id,omitempty"`
	Change   *models.PendingChange `json:"change,omitempty"`
}

// PendingQueue is the privileged review queue: every PENDING change
// system-wide plus the distinct entity types present, for building
// filter options.
type PendingQueue struct {
	pagination.PageResponse[models.PendingChange]
	EntityTypes []models.EntityType `json:"entity_types"`
}

// SubmissionList is one admin's own submissions with per-status counts
// across all of their records regardless of the active filter.
type SubmissionList struct {
	pagination.PageResponse[models.PendingChange]
	StatusCounts map[models.ChangeStatus]int64 `json:"status_counts"`
}

// PendingChangeServicer defines the contract for the change review workflow.
type PendingChangeServicer interface {
	Submit(submitter *models.User, entityType models.EntityType, action models.ChangeAction, entityID *string, changeData string) (*models.PendingChange, error)
	Propose(submitter *models.User, entityType models.EntityType, action models.ChangeAction, entityID *string, changeData string) (*ProposalResult, error)
	ListPending(entityType *models.EntityType, page pagination.PageRequest) (*PendingQueue, error)
	ListMySubmissions(userID string, status *models.ChangeStatus, page pagination.PageRequest) (*SubmissionList, error)
	GetByID(changeID string) (*models.PendingChange, error)
	Diff(changeID string) (*diff.Result, error)
	Approve(changeID string, reviewer *models.User, comments string) (*models.PendingChange, error)
	Reject(changeID string, reviewer *models.User, comments string) (*models.PendingChange, error)
}

// UserServicer defines the contract for admin account management.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.Role) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	AttemptLogin(email, password string) (*models.User, error)
	DeactivateUser(id string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CompanyServicer defines the contract for company content.
type CompanyServicer interface {
	GetCompanyByID(id string) (*models.Company, error)
	ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
	ListActiveCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
}

// JobFilter holds optional filter parameters for listing job postings.
type JobFilter struct {
	CompanyID      *string
	EmploymentType *models.EmploymentType
}

// JobServicer defines the contract for careers content.
type JobServicer interface {
	GetJobByID(id string) (*models.JobPosting, error)
	ListJobs(page pagination.PageRequest, filter JobFilter) (*pagination.PageResponse[models.JobPosting], error)
	ListOpenJobs(page pagination.PageRequest, filter JobFilter) (*pagination.PageResponse[models.JobPosting], error)
}

// MediaServicer defines the contract for media-section content.
type MediaServicer interface {
	GetMediaByID(id string) (*models.MediaAsset, error)
	ListMedia(mediaType *models.MediaType, page pagination.PageRequest) (*pagination.PageResponse[models.MediaAsset], error)
	ListPublishedMedia(mediaType *models.MediaType, page pagination.PageRequest) (*pagination.PageResponse[models.MediaAsset], error)
}

// LeadershipServicer defines the contract for leadership profiles.
type LeadershipServicer interface {
	GetProfileByID(id string) (*models.LeadershipProfile, error)
	ListProfiles(page pagination.PageRequest) (*pagination.PageResponse[models.LeadershipProfile], error)
}

// EventServicer defines the contract for news and events.
type EventServicer interface {
	GetEventByID(id string) (*models.Event, error)
	ListEvents(page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
	ListPublishedEvents(after *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Event], error)
}

// StatisticServicer defines the contract for culture-page statistics.
type StatisticServicer interface {
	GetStatisticByID(id string) (*models.Statistic, error)
	ListStatistics(page pagination.PageRequest) (*pagination.PageResponse[models.Statistic], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListLogs(page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
