package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/models"
)

type TournamentInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location"`
	Sponsors    []string   `json:"sponsors"`
	BannerURL   string     `json:"bannerUrl"`
}

type MatchInput struct {
	FieldName    string     `json:"fieldName"`
	TeamAID      uint       `json:"teamAId"`
	TeamBID      uint       `json:"teamBId"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Status       string     `json:"status"`
	ScoreA       int        `json:"scoreA"`
	ScoreB       int        `json:"scoreB"`
	WinnerTeamID *uint      `json:"winnerTeamId"`
}

// AnnounceInput is a message for a tournament's stakeholders.
type AnnounceInput struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Targets *Targets `json:"targets"`
}

type TournamentService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewTournamentService(db *gorm.DB, notifier *Notifier) *TournamentService {
	return &TournamentService{db: db, notifier: notifier}
}

func (s *TournamentService) Create(ctx context.Context, in TournamentInput) (*models.Tournament, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Validation("Tournament name is required")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperr.Validation("End date must not be before start date")
	}
	if in.Sponsors == nil {
		in.Sponsors = []string{}
	}
	t := models.Tournament{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    in.Location,
		Sponsors:    in.Sponsors,
		BannerURL:   in.BannerURL,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}
	logrus.WithField("tournament_id", t.ID).Info("Tournament created.")
	return &t, nil
}

// List returns tournaments, soonest start first.
func (s *TournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	if err := s.db.WithContext(ctx).Order("start_date").Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return out, nil
}

func (s *TournamentService) get(db *gorm.DB, id uint) (*models.Tournament, error) {
	var t models.Tournament
	err := db.First(&t, id).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Tournament not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	return &t, nil
}

// AssignVolunteer adds a volunteer to a tournament; repeating it changes nothing.
func (s *TournamentService) AssignVolunteer(ctx context.Context, tournamentID, volunteerID uint, duty string) (*models.VolunteerAssignment, error) {
	db := s.db.WithContext(ctx)
	t, err := s.get(db, tournamentID)
	if err != nil {
		return nil, err
	}

	var volunteer models.Person
	err = db.Preload("Roles").First(&volunteer, volunteerID).Error
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("load volunteer: %w", err)
	}
	if err != nil || !volunteer.HasRole(models.RoleVolunteer) {
		return nil, apperr.Validation("Selected person is not a volunteer")
	}

	assignment := models.VolunteerAssignment{TournamentID: t.ID, VolunteerID: volunteer.ID}
	res := db.Where(models.VolunteerAssignment{TournamentID: t.ID, VolunteerID: volunteer.ID}).
		Attrs(models.VolunteerAssignment{Duty: duty}).
		FirstOrCreate(&assignment)
	if res.Error != nil {
		return nil, fmt.Errorf("assign volunteer: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.notifier.Send(ctx, []uint{volunteer.ID}, Event{
			Type:              "volunteer_assigned",
			Title:             "Tournament Assignment",
			Message:           fmt.Sprintf("You have been assigned to volunteer at %s.", t.Name),
			RelatedEntityID:   t.ID,
			RelatedEntityType: "tournament",
		})
	}
	return &assignment, nil
}

// RecordMatch stores a match between two teams of the tournament.
func (s *TournamentService) RecordMatch(ctx context.Context, tournamentID uint, in MatchInput) (*models.Match, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.get(db, tournamentID); err != nil {
		return nil, err
	}
	if in.TeamAID == 0 || in.TeamBID == 0 || in.TeamAID == in.TeamBID {
		return nil, apperr.Validation("Two different teams are required")
	}
	if in.Status == "" {
		in.Status = models.MatchScheduled
	}
	switch in.Status {
	case models.MatchScheduled, models.MatchOngoing, models.MatchCompleted:
	default:
		return nil, apperr.Validation("Invalid match status %q", in.Status)
	}
	if in.WinnerTeamID != nil && *in.WinnerTeamID != in.TeamAID && *in.WinnerTeamID != in.TeamBID {
		return nil, apperr.Validation("Winner must be one of the two teams")
	}
	if in.ScoreA < 0 || in.ScoreB < 0 {
		return nil, apperr.Validation("Scores cannot be negative")
	}

	var count int64
	if err := db.Model(&models.Team{}).
		Where("id IN ? AND tournament_id = ?", []uint{in.TeamAID, in.TeamBID}, tournamentID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check teams: %w", err)
	}
	if count != 2 {
		return nil, apperr.Validation("Both teams must be registered for this tournament")
	}

	m := models.Match{
		TournamentID: tournamentID,
		FieldName:    in.FieldName,
		TeamAID:      in.TeamAID,
		TeamBID:      in.TeamBID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Status:       in.Status,
		ScoreA:       in.ScoreA,
		ScoreB:       in.ScoreB,
		WinnerTeamID: in.WinnerTeamID,
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("record match: %w", err)
	}
	return &m, nil
}

// Announce notifies the selected stakeholder groups; no targets means everyone.
func (s *TournamentService) Announce(ctx context.Context, tournamentID uint, in AnnounceInput) ([]models.Notification, error) {
	t, err := s.get(s.db.WithContext(ctx), tournamentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperr.Validation("Message is required")
	}
	ev := Event{
		Type:              in.Type,
		Title:             in.Title,
		Message:           in.Message,
		RelatedEntityID:   t.ID,
		RelatedEntityType: "tournament",
	}
	if ev.Type == "" {
		ev.Type = "tournament_update"
	}
	if ev.Title == "" {
		ev.Title = t.Name
	}
	targets := AllTargets()
	if in.Targets != nil {
		targets = *in.Targets
	}
	return s.notifier.NotifyTournamentStakeholders(ctx, t.ID, ev, targets), nil
}
