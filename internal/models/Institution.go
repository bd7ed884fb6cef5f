package models

import (
	"time"

	"gorm.io/gorm"
)

// Institution is a school or community club players and coaches affiliate with.
type Institution struct {
	gorm.Model
	Name     string   `json:"name" gorm:"not null"`
	Type     string   `json:"type" gorm:"not null;index"`
	Location string   `json:"location"`
	Geometry []byte   `json:"-"` // WKB point
	Coaches  []Person `json:"coaches,omitempty" gorm:"many2many:institution_coaches;"`
}

// InstitutionCoach is the join row linking a coach to an institution.
type InstitutionCoach struct {
	InstitutionID uint `gorm:"primaryKey"`
	PersonID      uint `gorm:"primaryKey"`
	CreatedAt     time.Time
}

func (InstitutionCoach) TableName() string { return "institution_coaches" }
