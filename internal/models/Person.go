package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RolePlayer    = "player"
	RoleCoach     = "coach"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"

	AccountActive    = "active"
	AccountSuspended = "suspended"
)

// Person is an identity record, independent of role.
type Person struct {
	gorm.Model
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Email         string       `json:"email" gorm:"uniqueIndex;not null"`
	Phone         string       `json:"phone" gorm:"not null"`
	UniqueUserID  string       `json:"uniqueUserId" gorm:"uniqueIndex;not null"`
	PasswordHash  string       `json:"-"`
	Roles         []PersonRole `json:"-" gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AccountStatus string       `json:"accountStatus" gorm:"default:active"`
	ApprovedByID  *uint        `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time   `json:"approvedAt,omitempty"`
}

func (Person) TableName() string { return "persons" }

// PersonRole is one entry of a person's role set.
type PersonRole struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PersonID  uint      `gorm:"uniqueIndex:idx_person_role;not null" json:"-"`
	Role      string    `gorm:"uniqueIndex:idx_person_role;not null" json:"role"`
	CreatedAt time.Time `json:"-"`
}

func (p Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// RoleNames returns the role set in insertion order.
func (p Person) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		names = append(names, r.Role)
	}
	return names
}

func (p Person) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// WithRole restricts a persons query to holders of role.
func WithRole(role string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&PersonRole{}).
			Select("person_id").
			Where("role = ?", role)
		return db.Where("persons.id IN (?)", sub)
	}
}

// PersonSummary is the shape used in selection lists and populated relations.
type PersonSummary struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	UniqueUserID string `json:"uniqueUserId"`
}

func (p Person) Summary() PersonSummary {
	return PersonSummary{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		UniqueUserID: p.UniqueUserID,
	}
}
