package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransferNone     = ""
	TransferPending  = "pending"
	TransferApproved = "approved"
	TransferRejected = "rejected"
)

// TransferRequest is a player's single active request to change institution.
type TransferRequest struct {
	Status            string     `json:"status" gorm:"index"`
	FromType          string     `json:"fromType,omitempty"`
	FromInstitutionID uint       `json:"fromInstitutionId,omitempty"`
	FromName          string     `json:"fromName,omitempty"`
	ToType            string     `json:"toType,omitempty"`
	ToInstitutionID   uint       `json:"toInstitutionId,omitempty"`
	ToName            string     `json:"toName,omitempty"`
	ToLocation        string     `json:"toLocation,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	RequestedOn       *time.Time `json:"requestedOn,omitempty"`
	ApprovedOn        *time.Time `json:"approvedOn,omitempty"`
	RejectedOn        *time.Time `json:"rejectedOn,omitempty"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`
}

func (t TransferRequest) IsPending() bool { return t.Status == TransferPending }

// TransferHistoryEntry is an approved transfer; entries are only ever appended.
type TransferHistoryEntry struct {
	TransferRequest
	CompletedOn time.Time `json:"completedOn"`
}

type PlayerProfile struct {
	gorm.Model
	PersonID        uint        `json:"personId" gorm:"uniqueIndex;not null"`
	Person          *Person     `json:"person,omitempty" gorm:"foreignKey:PersonID"`
	Age             int         `json:"age"`
	Gender          string      `json:"gender"`
	Experience      string      `json:"experience"`
	AssignedCoachID *uint       `json:"assignedCoachId,omitempty" gorm:"index"`
	TeamID          *uint       `json:"teamId,omitempty"`
	Affiliation     Affiliation `json:"affiliation" gorm:"embedded;embeddedPrefix:affiliation_"`
	JoinedOn        *time.Time  `json:"joinedOn,omitempty"`

	TotalMatchesPlayed int     `json:"totalMatchesPlayed"`
	TotalGoals         int     `json:"totalGoals"`
	TotalAssists       int     `json:"totalAssists"`
	WinRate            float64 `json:"winRate"`
	SpiritAverage      float64 `json:"spiritAverage"`

	TransferRequest TransferRequest        `json:"transferRequest" gorm:"embedded;embeddedPrefix:transfer_"`
	TransferHistory []TransferHistoryEntry `json:"transferHistory" gorm:"serializer:json;type:text"`
}
