package models

import "time"

// EmploymentType is the contract type of a job posting.
type EmploymentType string

const (
	EmploymentTypeFullTime   EmploymentType = "full_time"
	EmploymentTypePartTime   EmploymentType = "part_time"
	EmploymentTypeContract   EmploymentType = "contract"
	EmploymentTypeInternship EmploymentType = "internship"
)

// JobPosting represents a careers-page vacancy.
type JobPosting struct {
	Base
	CompanyID      *string        `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Company        *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Title          string         `gorm:"not null" json:"title"`
	Department     string         `json:"department"`
	Location       string         `json:"location"`
	EmploymentType EmploymentType `gorm:"not null" json:"employment_type"`
	Description    string         `gorm:"type:text" json:"description"`
	Requirements   string         `gorm:"type:text" json:"requirements"`
	ClosingDate    *time.Time     `json:"closing_date,omitempty"`
	IsOpen         bool           `json:"is_open"`
}
