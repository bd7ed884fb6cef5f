package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is one row per (recipient, event). RelatedEntityType is a free
// string; consumers interpret RelatedEntityID according to Type.
type Notification struct {
	gorm.Model
	RecipientID       uint       `json:"userId" gorm:"index;not null"`
	Type              string     `json:"type" gorm:"not null"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Read              bool       `json:"read" gorm:"not null;default:false"`
	ReadAt            *time.Time `json:"readAt,omitempty"`
	RelatedEntityID   uint       `json:"relatedEntityId,omitempty"`
	RelatedEntityType string     `json:"relatedEntityType,omitempty"`
}
