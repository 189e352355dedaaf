package models

// Statistic represents one headline figure on the culture page,
// e.g. "employees: 4,200" or "countries: 12".
type Statistic struct {
	Base
	Label        string `gorm:"not null;uniqueIndex" json:"label"`
	Value        string `gorm:"not null" json:"value"`
	Unit         string `json:"unit"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
}
