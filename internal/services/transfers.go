package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/models"
)

// PendingTransfer is a pending request with enough player data to review it.
type PendingTransfer struct {
	PlayerID        uint                   `json:"playerId"`
	PlayerName      string                 `json:"playerName"`
	PlayerEmail     string                 `json:"playerEmail"`
	PlayerUserID    string                 `json:"playerUserId"`
	TransferRequest models.TransferRequest `json:"transferRequest"`
}

// TransferService moves players between institutions:
// none -> pending -> approved | rejected.
type TransferService struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier *Notifier
}

func NewTransferService(db *gorm.DB, clk clock.Clock, notifier *Notifier) *TransferService {
	return &TransferService{db: db, clock: clk, notifier: notifier}
}

// Request opens a transfer from the player's current institution to another.
func (s *TransferService) Request(ctx context.Context, playerID, institutionID uint, reason string) (*models.PlayerProfile, error) {
	if institutionID == 0 {
		return nil, apperr.Validation("Target institution is required")
	}
	db := s.db.WithContext(ctx)

	profile, err := s.profile(db, playerID)
	if err != nil {
		return nil, err
	}
	if profile.TransferRequest.IsPending() {
		return nil, apperr.Conflict("A transfer request is already pending")
	}

	var target models.Institution
	err = db.First(&target, institutionID).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.Validation("Target institution not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load institution: %w", err)
	}
	if target.ID == profile.Affiliation.InstitutionID {
		return nil, apperr.Validation("You are already affiliated with %s", target.Name)
	}

	now := s.clock.Now()
	profile.TransferRequest = models.TransferRequest{
		Status:            models.TransferPending,
		FromType:          profile.Affiliation.Type,
		FromInstitutionID: profile.Affiliation.InstitutionID,
		FromName:          profile.Affiliation.Name,
		ToType:            target.Type,
		ToInstitutionID:   target.ID,
		ToName:            target.Name,
		ToLocation:        target.Location,
		Reason:            strings.TrimSpace(reason),
		RequestedOn:       &now,
	}
	if err := db.Omit(clause.Associations).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("save transfer request: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"player_id": playerID,
		"to":        target.ID,
	}).Info("Transfer requested.")
	return profile, nil
}

// Pending lists every open transfer request with its player.
func (s *TransferService) Pending(ctx context.Context) ([]PendingTransfer, error) {
	var profiles []models.PlayerProfile
	if err := s.db.WithContext(ctx).Preload("Person").
		Where("transfer_status = ?", models.TransferPending).
		Order("transfer_requested_on").Order("id").
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list pending transfers: %w", err)
	}

	out := make([]PendingTransfer, 0, len(profiles))
	for _, p := range profiles {
		pt := PendingTransfer{PlayerID: p.PersonID, TransferRequest: p.TransferRequest}
		if p.Person != nil {
			pt.PlayerName = p.Person.FullName()
			pt.PlayerEmail = p.Person.Email
			pt.PlayerUserID = p.Person.UniqueUserID
		}
		out = append(out, pt)
	}
	return out, nil
}

// Approve moves the player to the requested institution and records the move
// in the history.
func (s *TransferService) Approve(ctx context.Context, playerID uint) (*models.TransferRequest, error) {
	db := s.db.WithContext(ctx)
	profile, err := s.pendingProfile(db, playerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tr := profile.TransferRequest
	tr.Status = models.TransferApproved
	tr.ApprovedOn = &now

	profile.TransferRequest = tr
	profile.TransferHistory = append(profile.TransferHistory, models.TransferHistoryEntry{
		TransferRequest: tr,
		CompletedOn:     now,
	})
	profile.Affiliation = models.Affiliation{
		Type:          tr.ToType,
		InstitutionID: tr.ToInstitutionID,
		Name:          tr.ToName,
		Location:      tr.ToLocation,
	}
	profile.JoinedOn = &now

	if err := db.Omit(clause.Associations).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("approve transfer: %w", err)
	}

	s.notifier.Send(ctx, []uint{playerID}, Event{
		Type:              "transfer_approved",
		Title:             "Transfer Request Approved",
		Message:           fmt.Sprintf("Your transfer request to %s has been approved!", tr.ToName),
		RelatedEntityID:   tr.ToInstitutionID,
		RelatedEntityType: "institution",
	})
	logrus.WithFields(logrus.Fields{"player_id": playerID, "to": tr.ToInstitutionID}).Info("Transfer approved.")
	return &tr, nil
}

// Reject closes the request; affiliation and history stay as they were.
func (s *TransferService) Reject(ctx context.Context, playerID uint, reason string) (*models.TransferRequest, error) {
	db := s.db.WithContext(ctx)
	profile, err := s.pendingProfile(db, playerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reason = strings.TrimSpace(reason)
	if err := db.Model(profile).Updates(map[string]any{
		"transfer_status":           models.TransferRejected,
		"transfer_rejected_on":      now,
		"transfer_rejection_reason": reason,
	}).Error; err != nil {
		return nil, fmt.Errorf("reject transfer: %w", err)
	}
	tr := profile.TransferRequest
	tr.Status = models.TransferRejected
	tr.RejectedOn = &now
	tr.RejectionReason = reason

	msg := fmt.Sprintf("Your transfer request to %s has been rejected.", tr.ToName)
	if reason != "" {
		msg += " Reason: " + reason
	} else {
		msg += " Please contact admin for more information."
	}
	s.notifier.Send(ctx, []uint{playerID}, Event{
		Type:              "transfer_rejected",
		Title:             "Transfer Request Rejected",
		Message:           msg,
		RelatedEntityID:   tr.ToInstitutionID,
		RelatedEntityType: "institution",
	})
	logrus.WithField("player_id", playerID).Info("Transfer rejected.")
	return &tr, nil
}

func (s *TransferService) profile(db *gorm.DB, playerID uint) (*models.PlayerProfile, error) {
	if playerID == 0 {
		return nil, apperr.Validation("Player ID is required")
	}
	var profile models.PlayerProfile
	err := db.Where("person_id = ?", playerID).First(&profile).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Player profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load player profile: %w", err)
	}
	return &profile, nil
}

func (s *TransferService) pendingProfile(db *gorm.DB, playerID uint) (*models.PlayerProfile, error) {
	profile, err := s.profile(db, playerID)
	if err != nil {
		return nil, err
	}
	if !profile.TransferRequest.IsPending() {
		return nil, apperr.Conflict("No pending transfer request found")
	}
	return profile, nil
}
