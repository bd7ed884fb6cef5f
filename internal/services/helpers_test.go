package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/messaging"
	"yultimate_hub/internal/models"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (p *recordingPublisher) Publish(ns ...models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, ns...)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent []messaging.Delivery
}

func (d *recordingDelivery) Deliver(_ context.Context, msg messaging.Delivery) messaging.DeliveryReport {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, msg)
	return messaging.DeliveryReport{EmailSent: msg.Email != "", SMSSent: msg.SMS != ""}
}

func (d *recordingDelivery) subjects() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.sent))
	for _, m := range d.sent {
		out = append(out, m.Subject)
	}
	return out
}

func newClock() *clock.Mock { return clock.NewMock(epoch) }

// createPerson inserts an approved account directly, bypassing signup.
func createPerson(t *testing.T, db *gorm.DB, code, email, password string, roles ...string) *models.Person {
	t.Helper()
	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	p := models.Person{
		FirstName:     "First" + code,
		LastName:      "Last",
		Email:         email,
		Phone:         "9876543210",
		UniqueUserID:  code,
		PasswordHash:  hash,
		AccountStatus: models.AccountActive,
	}
	for _, r := range roles {
		p.Roles = append(p.Roles, models.PersonRole{Role: r})
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func createInstitution(t *testing.T, db *gorm.DB, name, typ string) *models.Institution {
	t.Helper()
	inst := models.Institution{Name: name, Type: typ, Location: "Bengaluru"}
	require.NoError(t, db.Create(&inst).Error)
	return &inst
}

func createCoachProfile(t *testing.T, db *gorm.DB, coach *models.Person, inst *models.Institution) {
	t.Helper()
	require.NoError(t, db.Create(&models.CoachProfile{
		PersonID:       coach.ID,
		Certifications: []string{},
		Affiliation:    models.Affiliation{Type: inst.Type, InstitutionID: inst.ID, Name: inst.Name},
	}).Error)
}

func createPlayerProfile(t *testing.T, db *gorm.DB, player *models.Person, coachID *uint, inst *models.Institution) *models.PlayerProfile {
	t.Helper()
	profile := models.PlayerProfile{PersonID: player.ID, Age: 15, Gender: "female", Experience: "beginner", AssignedCoachID: coachID}
	if inst != nil {
		profile.Affiliation = models.Affiliation{Type: inst.Type, InstitutionID: inst.ID, Name: inst.Name, Location: inst.Location}
	}
	require.NoError(t, db.Create(&profile).Error)
	return &profile
}

func notificationsFor(t *testing.T, db *gorm.DB, personID uint) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", personID).Order("id").Find(&rows).Error)
	return rows
}

func notificationTypes(rows []models.Notification) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Type)
	}
	return out
}
