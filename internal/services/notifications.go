package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/models"
)

const defaultNotificationLimit = 50

// Publisher pushes freshly stored notifications to live clients.
type Publisher interface {
	Publish(notifications ...models.Notification)
}

type noopPublisher struct{}

func (noopPublisher) Publish(...models.Notification) {}

// Event is the content of a notification before it is addressed.
type Event struct {
	Type              string
	Title             string
	Message           string
	RelatedEntityID   uint
	RelatedEntityType string
}

func (e Event) addressedTo(recipientID uint, at time.Time) models.Notification {
	n := models.Notification{
		RecipientID:       recipientID,
		Type:              e.Type,
		Title:             e.Title,
		Message:           e.Message,
		RelatedEntityID:   e.RelatedEntityID,
		RelatedEntityType: e.RelatedEntityType,
	}
	n.CreatedAt = at
	n.UpdatedAt = at
	return n
}

// Targets selects which stakeholder groups of a tournament are notified.
type Targets struct {
	Admins     bool `json:"admins"`
	Coaches    bool `json:"coaches"`
	Players    bool `json:"players"`
	Volunteers bool `json:"volunteers"`
}

func AllTargets() Targets {
	return Targets{Admins: true, Coaches: true, Players: true, Volunteers: true}
}

func (t Targets) any() bool {
	return t.Admins || t.Coaches || t.Players || t.Volunteers
}

// NotificationView adds a relative time label to a stored notification.
type NotificationView struct {
	models.Notification
	Time string `json:"time"`
}

type NotificationPage struct {
	Notifications []NotificationView `json:"notifications"`
	UnreadCount   int64              `json:"unreadCount"`
	Total         int64              `json:"total"`
}

type Notifier struct {
	db    *gorm.DB
	clock clock.Clock
	pub   Publisher
}

func NewNotifier(db *gorm.DB, clk clock.Clock, pub Publisher) *Notifier {
	if pub == nil {
		pub = noopPublisher{}
	}
	return &Notifier{db: db, clock: clk, pub: pub}
}

// Create stores one notification and pushes it to the recipient.
func (n *Notifier) Create(ctx context.Context, recipientID uint, ev Event) (*models.Notification, error) {
	row := ev.addressedTo(recipientID, n.clock.Now())
	if err := n.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	n.pub.Publish(row)
	return &row, nil
}

// CreateForUsers stores one notification per distinct recipient in a single
// insert. An empty recipient list writes nothing.
func (n *Notifier) CreateForUsers(ctx context.Context, recipientIDs []uint, ev Event) ([]models.Notification, error) {
	ids := dedupe(recipientIDs)
	if len(ids) == 0 {
		return []models.Notification{}, nil
	}

	now := n.clock.Now()
	rows := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, ev.addressedTo(id, now))
	}
	if err := n.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("create notifications: %w", err)
	}
	n.pub.Publish(rows...)
	return rows, nil
}

// Send is the best-effort form of CreateForUsers: failures are logged, never returned.
func (n *Notifier) Send(ctx context.Context, recipientIDs []uint, ev Event) []models.Notification {
	rows, err := n.CreateForUsers(ctx, recipientIDs, ev)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":       ev.Type,
			"recipients": len(recipientIDs),
		}).Warn("Notification fan-out failed.")
		return []models.Notification{}
	}
	return rows
}

// NotifyTournamentStakeholders resolves the selected groups of a tournament
// and notifies their union once. Resolution failures yield an empty result.
func (n *Notifier) NotifyTournamentStakeholders(ctx context.Context, tournamentID uint, ev Event, targets Targets) []models.Notification {
	log := logrus.WithFields(logrus.Fields{"tournament_id": tournamentID, "type": ev.Type})

	ids, err := n.tournamentStakeholders(ctx, tournamentID, targets)
	if err != nil {
		log.WithError(err).Warn("Could not resolve tournament stakeholders.")
		return []models.Notification{}
	}
	if len(ids) == 0 {
		log.Debug("No stakeholders to notify.")
		return []models.Notification{}
	}
	return n.Send(ctx, ids, ev)
}

func (n *Notifier) tournamentStakeholders(ctx context.Context, tournamentID uint, targets Targets) ([]uint, error) {
	if !targets.any() {
		return nil, nil
	}
	db := n.db.WithContext(ctx)
	var ids []uint

	if targets.Admins {
		var admins []uint
		if err := db.Model(&models.Person{}).Scopes(models.WithRole(models.RoleAdmin)).
			Order("persons.id").Pluck("persons.id", &admins).Error; err != nil {
			return nil, fmt.Errorf("admins: %w", err)
		}
		ids = append(ids, admins...)
	}

	var teams []models.Team
	if targets.Coaches || targets.Players {
		if err := db.Where("tournament_id = ?", tournamentID).Order("id").Find(&teams).Error; err != nil {
			return nil, fmt.Errorf("teams: %w", err)
		}
	}

	if targets.Coaches {
		for _, t := range teams {
			ids = append(ids, t.CoachID)
		}
	}

	if targets.Players && len(teams) > 0 {
		teamIDs := make([]uint, 0, len(teams))
		for _, t := range teams {
			teamIDs = append(teamIDs, t.ID)
		}
		var rostered []uint
		if err := db.Model(&models.TeamRoster{}).
			Where("team_id IN ? AND status = ?", teamIDs, models.RosterActive).
			Order("id").Pluck("player_id", &rostered).Error; err != nil {
			return nil, fmt.Errorf("rosters: %w", err)
		}
		ids = append(ids, rostered...)
		for _, t := range teams {
			for _, p := range t.Players {
				ids = append(ids, p.PlayerID)
			}
		}
	}

	if targets.Volunteers {
		var volunteers []uint
		if err := db.Model(&models.VolunteerAssignment{}).
			Where("tournament_id = ?", tournamentID).
			Order("id").Pluck("volunteer_id", &volunteers).Error; err != nil {
			return nil, fmt.Errorf("volunteers: %w", err)
		}
		ids = append(ids, volunteers...)
	}

	return dedupe(ids), nil
}

// List returns a page of the person's notifications, newest first.
func (n *Notifier) List(ctx context.Context, personID uint, limit, offset int) (*NotificationPage, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}
	db := n.db.WithContext(ctx)

	var rows []models.Notification
	if err := db.Where("recipient_id = ?", personID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	page := &NotificationPage{Notifications: make([]NotificationView, 0, len(rows))}
	if err := db.Model(&models.Notification{}).Where("recipient_id = ?", personID).Count(&page.Total).Error; err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}
	unread, err := n.UnreadCount(ctx, personID)
	if err != nil {
		return nil, err
	}
	page.UnreadCount = unread

	now := n.clock.Now()
	for _, row := range rows {
		page.Notifications = append(page.Notifications, NotificationView{
			Notification: row,
			Time:         FormatTimeAgo(now, row.CreatedAt),
		})
	}
	return page, nil
}

func (n *Notifier) UnreadCount(ctx context.Context, personID uint) (int64, error) {
	var count int64
	err := n.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", personID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// MarkRead flags one of the person's notifications as read.
func (n *Notifier) MarkRead(ctx context.Context, personID, notificationID uint) (*models.Notification, error) {
	var row models.Notification
	err := n.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, personID).
		First(&row).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load notification: %w", err)
	}
	if row.Read {
		return &row, nil
	}

	now := n.clock.Now()
	if err := n.db.WithContext(ctx).Model(&row).Updates(map[string]any{"read": true, "read_at": now}).Error; err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	row.Read = true
	row.ReadAt = &now
	return &row, nil
}

// MarkAllRead flags every unread notification of the person and returns how many changed.
func (n *Notifier) MarkAllRead(ctx context.Context, personID uint) (int64, error) {
	res := n.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", personID, false).
		Updates(map[string]any{"read": true, "read_at": n.clock.Now()})
	if res.Error != nil {
		return 0, fmt.Errorf("mark all read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (n *Notifier) Delete(ctx context.Context, personID, notificationID uint) error {
	res := n.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, personID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return fmt.Errorf("delete notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

// FormatTimeAgo renders t relative to now the way the notification list shows it.
func FormatTimeAgo(now, t time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d sec ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "1 hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "1 day ago"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// dedupe drops zero ids and repeats, keeping first-seen order.
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
