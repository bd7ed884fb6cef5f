package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SessionTraining = "training"
	SessionWorkshop = "workshop"

	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
)

type Session struct {
	gorm.Model
	CohortID        *uint     `json:"cohortId,omitempty"`
	Cohort          *Cohort   `json:"cohort,omitempty"`
	Title           string    `json:"title" gorm:"not null"`
	Type            string    `json:"type" gorm:"not null"`
	ScheduledStart  time.Time `json:"scheduledStart"`
	ScheduledEnd    time.Time `json:"scheduledEnd"`
	Venue           string    `json:"venue,omitempty"`
	Status          string    `json:"status" gorm:"default:scheduled"`
	AssignedCoaches []Person  `json:"assignedCoaches" gorm:"many2many:session_coaches;"`
	EnrolledPlayers []Person  `json:"enrolledPlayers" gorm:"many2many:session_players;"`
}

type Cohort struct {
	gorm.Model
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Capacity  int        `json:"capacity"`
}

type SessionCoach struct {
	SessionID uint `gorm:"primaryKey"`
	PersonID  uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (SessionCoach) TableName() string { return "session_coaches" }

type SessionPlayer struct {
	SessionID uint `gorm:"primaryKey"`
	PersonID  uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (SessionPlayer) TableName() string { return "session_players" }

// All lists every model for AutoMigrate, join-table owners after their targets.
func All() []any {
	return []any{
		&Person{}, &PersonRole{}, &RoleRequest{}, &CredentialPool{},
		&Institution{}, &PlayerProfile{}, &CoachProfile{}, &VolunteerProfile{},
		&Notification{}, &Tournament{}, &Team{}, &TeamRoster{},
		&VolunteerAssignment{}, &Match{}, &Cohort{}, &Session{},
		&InstitutionCoach{}, &SessionCoach{}, &SessionPlayer{},
	}
}
