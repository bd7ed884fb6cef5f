package models

import "gorm.io/gorm"

const (
	CredentialActive  = "active"
	CredentialUsed    = "used"
	CredentialExpired = "expired"

	SentViaEmail = "email"
	SentViaSMS   = "sms"
	SentViaBoth  = "both"
)

// CredentialPool records which unique code was issued to which person and how.
type CredentialPool struct {
	gorm.Model
	PersonID     uint   `json:"personId" gorm:"uniqueIndex;not null"`
	UniqueUserID string `json:"uniqueUserId" gorm:"uniqueIndex;not null"`
	Status       string `json:"status" gorm:"default:active"`
	SentVia      string `json:"sentVia" gorm:"default:email"`
}
