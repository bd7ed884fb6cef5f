package models

import "gorm.io/gorm"

const (
	RosterActive   = "active"
	RosterPending  = "pending"
	RosterApproved = "approved"
)

// TeamPlayer is an entry of the roster submitted with the team form.
type TeamPlayer struct {
	Name     string `json:"name"`
	PlayerID uint   `json:"playerId"`
	Email    string `json:"email,omitempty"`
	Age      int    `json:"age,omitempty"`
	Position string `json:"position,omitempty"`
}

type Team struct {
	gorm.Model
	TeamName     string       `json:"teamName" gorm:"not null"`
	TotalMembers int          `json:"totalMembers"`
	Players      []TeamPlayer `json:"players" gorm:"serializer:json;type:text"`
	TournamentID *uint        `json:"tournamentId,omitempty" gorm:"index"`
	CoachID      uint         `json:"coachId" gorm:"index;not null"`
	ContactPhone string       `json:"contactPhone,omitempty"`
	ContactEmail string       `json:"contactEmail,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

type TeamRoster struct {
	gorm.Model
	TeamID       uint    `json:"teamId" gorm:"uniqueIndex:idx_team_player;not null"`
	PlayerID     uint    `json:"playerId" gorm:"uniqueIndex:idx_team_player;not null"`
	Player       *Person `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	JerseyNumber int     `json:"jerseyNumber"`
	Status       string  `json:"status" gorm:"default:active"`
}
