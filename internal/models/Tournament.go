package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MatchScheduled = "scheduled"
	MatchOngoing   = "ongoing"
	MatchCompleted = "completed"
)

type Tournament struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    string     `json:"location"`
	Sponsors    []string   `json:"sponsors" gorm:"serializer:json;type:text"`
	BannerURL   string     `json:"bannerUrl,omitempty"`
}

// VolunteerAssignment links a volunteer to a tournament.
type VolunteerAssignment struct {
	gorm.Model
	TournamentID uint   `json:"tournamentId" gorm:"uniqueIndex:idx_tournament_volunteer;not null"`
	VolunteerID  uint   `json:"volunteerId" gorm:"uniqueIndex:idx_tournament_volunteer;not null"`
	Duty         string `json:"duty,omitempty"`
}

type Match struct {
	gorm.Model
	TournamentID uint       `json:"tournamentId" gorm:"index"`
	FieldName    string     `json:"fieldName"`
	TeamAID      uint       `json:"teamAId"`
	TeamBID      uint       `json:"teamBId"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Status       string     `json:"status" gorm:"default:scheduled;index"`
	ScoreA       int        `json:"scoreA"`
	ScoreB       int        `json:"scoreB"`
	WinnerTeamID *uint      `json:"winnerTeamId,omitempty"`
}
