package models

// LeadershipProfile represents a board member or executive bio.
type LeadershipProfile struct {
	Base
	Name         string   `gorm:"not null" json:"name"`
	Title        string   `gorm:"not null" json:"title"`
	CompanyID    *string  `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Company      *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	PhotoURL     string   `json:"photo_url"`
	Bio          string   `gorm:"type:text" json:"bio"`
	DisplayOrder int      `gorm:"default:0" json:"display_order"`
}
