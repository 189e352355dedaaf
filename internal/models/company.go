package models

// Company represents a subsidiary of the holding group shown on the
// public site and managed from the admin console.
type Company struct {
	Base
	Name         string `gorm:"not null;index" json:"name"`
	Sector       string `json:"sector"`
	Tagline      string `json:"tagline"`
	Description  string `gorm:"type:text" json:"description"`
	Website      string `json:"website"`
	LogoURL      string `json:"logo_url"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	IsActive     bool   `json:"is_active"`
}
