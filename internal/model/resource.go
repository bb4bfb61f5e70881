package model

import "strings"

// Resource represents a catalogued machine/asset that can be the subject of a complaint.
// The catalog is administered externally; this service only reads it.
type Resource struct {
	ID               int64   `gorm:"column:machid;primaryKey" json:"id"`
	Name             string  `gorm:"size:255;not null" json:"name"`
	Location         string  `gorm:"size:255;not null" json:"location"`
	ActivationStatus *string `gorm:"size:50" json:"-"`
}

// TableName preserves the legacy table name.
func (Resource) TableName() string { return "resources" }

// IsActive reports whether the resource should be offered for matching.
// An unset status counts as active.
func (r Resource) IsActive() bool {
	if r.ActivationStatus == nil {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(*r.ActivationStatus)) {
	case "", "active", "1", "true", "yes":
		return true
	}
	return false
}
