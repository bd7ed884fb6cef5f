package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"

	AffiliationSchool    = "school"
	AffiliationCommunity = "community"
)

// Affiliation points a player or coach at an institution. Name and location
// are copied so the record reads on its own.
type Affiliation struct {
	Type          string `json:"type"`
	InstitutionID uint   `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
}

func (a Affiliation) IsSet() bool { return a.InstitutionID != 0 }

// ApplicantInfo is the snapshot submitted at signup.
type ApplicantInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email" gorm:"index"`
	Phone      string `json:"phone"`
	Age        int    `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// RoleRequest is a signup application awaiting admin review.
type RoleRequest struct {
	gorm.Model
	ApplicantInfo ApplicantInfo `json:"applicantInfo" gorm:"embedded;embeddedPrefix:applicant_"`
	Affiliation   Affiliation   `json:"affiliation" gorm:"embedded;embeddedPrefix:affiliation_"`
	RequestedRole string        `json:"requestedRole" gorm:"not null"`
	PasswordHash  string        `json:"-" gorm:"not null"`
	Status        string        `json:"status" gorm:"default:pending;index"`
	ReviewedByID  *uint         `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewedAt,omitempty"`
	Remarks       string        `json:"remarks,omitempty"`
}
