package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/models"
)

// SessionInput carries a create or a partial update; nil fields are left alone on update.
type SessionInput struct {
	CohortID        *uint      `json:"cohortId"`
	Title           *string    `json:"title"`
	Type            *string    `json:"type"`
	ScheduledStart  *time.Time `json:"scheduledStart"`
	ScheduledEnd    *time.Time `json:"scheduledEnd"`
	Venue           *string    `json:"venue"`
	Status          *string    `json:"status"`
	AssignedCoaches []uint     `json:"assignedCoaches"`
}

type SessionService struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier *Notifier
}

func NewSessionService(db *gorm.DB, clk clock.Clock, notifier *Notifier) *SessionService {
	return &SessionService{db: db, clock: clk, notifier: notifier}
}

func withSessionRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Cohort").Preload("AssignedCoaches").Preload("EnrolledPlayers")
}

// List returns every session, latest start first.
func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.WithContext(ctx).Scopes(withSessionRelations).
		Order("scheduled_start DESC").Order("id DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) Get(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Scopes(withSessionRelations).First(&session, id).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &session, nil
}

// ByCoach lists the sessions a coach is assigned to.
func (s *SessionService) ByCoach(ctx context.Context, coachID uint) ([]models.Session, error) {
	db := s.db.WithContext(ctx)
	assigned := db.Model(&models.SessionCoach{}).Select("session_id").Where("person_id = ?", coachID)

	var sessions []models.Session
	if err := db.Scopes(withSessionRelations).
		Where("id IN (?)", assigned).
		Order("scheduled_start DESC").Order("id DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list coach sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) Cohorts(ctx context.Context) ([]models.Cohort, error) {
	var cohorts []models.Cohort
	if err := s.db.WithContext(ctx).Order("name").Find(&cohorts).Error; err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	return cohorts, nil
}

// Create schedules a session and tells the assigned coaches.
func (s *SessionService) Create(ctx context.Context, in SessionInput) (*models.Session, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" || in.Type == nil ||
		in.ScheduledStart == nil || in.ScheduledEnd == nil {
		return nil, apperr.Validation("Title, type, start and end time are required")
	}
	session := models.Session{
		Title:          strings.TrimSpace(*in.Title),
		Type:           *in.Type,
		ScheduledStart: *in.ScheduledStart,
		ScheduledEnd:   *in.ScheduledEnd,
		Status:         models.SessionScheduled,
		CohortID:       in.CohortID,
	}
	if in.Venue != nil {
		session.Venue = *in.Venue
	}
	if in.Status != nil {
		session.Status = *in.Status
	}
	if err := validateSession(&session); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkCohort(db, session.CohortID); err != nil {
		return nil, err
	}
	coachIDs, err := s.checkCoaches(db, in.AssignedCoaches)
	if err != nil {
		return nil, err
	}

	if err := db.Omit(clause.Associations).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := s.replaceCoaches(db, session.ID, coachIDs); err != nil {
		return nil, err
	}

	s.notifier.Send(ctx, coachIDs, Event{
		Type:              "session_assigned",
		Title:             "New Session Assigned",
		Message:           fmt.Sprintf("You have been assigned to session %q.", session.Title),
		RelatedEntityID:   session.ID,
		RelatedEntityType: "session",
	})
	logrus.WithFields(logrus.Fields{"session_id": session.ID, "coaches": len(coachIDs)}).Info("Session created.")
	return s.Get(ctx, session.ID)
}

// Update applies the non-nil fields of in and tells coaches and players.
func (s *SessionService) Update(ctx context.Context, id uint, in SessionInput) (*models.Session, error) {
	db := s.db.WithContext(ctx)
	var session models.Session
	err := db.First(&session, id).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if in.Title != nil {
		session.Title = strings.TrimSpace(*in.Title)
	}
	if in.Type != nil {
		session.Type = *in.Type
	}
	if in.ScheduledStart != nil {
		session.ScheduledStart = *in.ScheduledStart
	}
	if in.ScheduledEnd != nil {
		session.ScheduledEnd = *in.ScheduledEnd
	}
	if in.Venue != nil {
		session.Venue = *in.Venue
	}
	if in.Status != nil {
		session.Status = *in.Status
	}
	if in.CohortID != nil {
		session.CohortID = in.CohortID
		if err := s.checkCohort(db, in.CohortID); err != nil {
			return nil, err
		}
	}
	if session.Title == "" {
		return nil, apperr.Validation("Title is required")
	}
	if err := validateSession(&session); err != nil {
		return nil, err
	}

	var coachIDs []uint
	if in.AssignedCoaches != nil {
		if coachIDs, err = s.checkCoaches(db, in.AssignedCoaches); err != nil {
			return nil, err
		}
	}

	if err := db.Omit(clause.Associations).Save(&session).Error; err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if in.AssignedCoaches != nil {
		if err := s.replaceCoaches(db, session.ID, coachIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	var recipients []uint
	for _, c := range updated.AssignedCoaches {
		recipients = append(recipients, c.ID)
	}
	for _, p := range updated.EnrolledPlayers {
		recipients = append(recipients, p.ID)
	}
	s.notifier.Send(ctx, recipients, Event{
		Type:              "session_updated",
		Title:             "Session Updated",
		Message:           fmt.Sprintf("Session %q details have been updated.", updated.Title),
		RelatedEntityID:   updated.ID,
		RelatedEntityType: "session",
	})
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	var session models.Session
	err := db.First(&session, id).Error
	if apperr.IsNotFound(err) {
		return apperr.NotFound("Session not found")
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := db.Where("session_id = ?", id).Delete(&models.SessionCoach{}).Error; err != nil {
		return fmt.Errorf("clear session coaches: %w", err)
	}
	if err := db.Where("session_id = ?", id).Delete(&models.SessionPlayer{}).Error; err != nil {
		return fmt.Errorf("clear session players: %w", err)
	}
	if err := db.Delete(&session).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	logrus.WithField("session_id", id).Info("Session deleted.")
	return nil
}

// AddPlayers enrols players who are not yet in the session and returns how
// many were added.
func (s *SessionService) AddPlayers(ctx context.Context, id uint, playerIDs []uint) (*models.Session, int, error) {
	if len(playerIDs) == 0 {
		return nil, 0, apperr.Validation("Please select at least one player")
	}
	ids := dedupe(playerIDs)
	if len(ids) == 0 {
		return nil, 0, apperr.Validation("No valid player IDs provided")
	}

	db := s.db.WithContext(ctx)
	var session models.Session
	err := db.First(&session, id).Error
	if apperr.IsNotFound(err) {
		return nil, 0, apperr.NotFound("Session not found")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load session: %w", err)
	}

	var players int64
	if err := db.Model(&models.Person{}).Scopes(models.WithRole(models.RolePlayer)).
		Where("persons.id IN ?", ids).Count(&players).Error; err != nil {
		return nil, 0, fmt.Errorf("check players: %w", err)
	}
	if int(players) != len(ids) {
		return nil, 0, apperr.Validation("One or more selected users are not players")
	}

	var enrolled []uint
	if err := db.Model(&models.SessionPlayer{}).Where("session_id = ?", id).Pluck("person_id", &enrolled).Error; err != nil {
		return nil, 0, fmt.Errorf("load enrolment: %w", err)
	}
	already := make(map[uint]bool, len(enrolled))
	for _, pid := range enrolled {
		already[pid] = true
	}
	rows := make([]models.SessionPlayer, 0, len(ids))
	added := make([]uint, 0, len(ids))
	for _, pid := range ids {
		if !already[pid] {
			rows = append(rows, models.SessionPlayer{SessionID: id, PersonID: pid})
			added = append(added, pid)
		}
	}
	if len(rows) == 0 {
		return nil, 0, apperr.Validation("All selected players are already enrolled in this session")
	}
	if err := db.Create(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("enrol players: %w", err)
	}

	s.notifier.Send(ctx, added, Event{
		Type:              "session_enrollment",
		Title:             "Added To Session",
		Message:           fmt.Sprintf("You have been added to session %q.", session.Title),
		RelatedEntityID:   session.ID,
		RelatedEntityType: "session",
	})

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return updated, len(added), nil
}

func validateSession(s *models.Session) error {
	if s.Type != models.SessionTraining && s.Type != models.SessionWorkshop {
		return apperr.Validation("Session type must be training or workshop")
	}
	if s.Status != models.SessionScheduled && s.Status != models.SessionCompleted {
		return apperr.Validation("Session status must be scheduled or completed")
	}
	if !s.ScheduledEnd.After(s.ScheduledStart) {
		return apperr.Validation("End time must be after start time")
	}
	return nil
}

func (s *SessionService) checkCohort(db *gorm.DB, cohortID *uint) error {
	if cohortID == nil || *cohortID == 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Cohort{}).Where("id = ?", *cohortID).Count(&count).Error; err != nil {
		return fmt.Errorf("check cohort: %w", err)
	}
	if count == 0 {
		return apperr.NotFound("Cohort not found")
	}
	return nil
}

// checkCoaches de-duplicates ids and requires each to hold the coach role.
func (s *SessionService) checkCoaches(db *gorm.DB, ids []uint) ([]uint, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	var count int64
	if err := db.Model(&models.Person{}).Scopes(models.WithRole(models.RoleCoach)).
		Where("persons.id IN ?", ids).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check coaches: %w", err)
	}
	if int(count) != len(ids) {
		return nil, apperr.Validation("One or more assigned coaches are invalid")
	}
	return ids, nil
}

func (s *SessionService) replaceCoaches(db *gorm.DB, sessionID uint, coachIDs []uint) error {
	if err := db.Where("session_id = ?", sessionID).Delete(&models.SessionCoach{}).Error; err != nil {
		return fmt.Errorf("clear coaches: %w", err)
	}
	if len(coachIDs) == 0 {
		return nil
	}
	rows := make([]models.SessionCoach, 0, len(coachIDs))
	for _, id := range coachIDs {
		rows = append(rows, models.SessionCoach{SessionID: sessionID, PersonID: id})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("assign coaches: %w", err)
	}
	return nil
}
