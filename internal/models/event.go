package models

import "time"

// Event represents a news or calendar item for the public site.
type Event struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Summary     string     `json:"summary"`
	Body        string     `gorm:"type:text" json:"body"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	IsPublished bool       `gorm:"default:false" json:"is_published"`
}
