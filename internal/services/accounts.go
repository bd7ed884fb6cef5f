package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/messaging"
	"yultimate_hub/internal/models"
)

const passwordCost = 10

// Deliverer sends best-effort email and SMS.
type Deliverer interface {
	Deliver(ctx context.Context, msg messaging.Delivery) messaging.DeliveryReport
}

type SignupInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Experience      string `json:"experience"`
	AffiliationType string `json:"affiliationType"`
	AffiliationID   uint   `json:"affiliationId"`
}

// ApprovalResult is what the admin sees after approving a request.
type ApprovalResult struct {
	PersonID     uint
	UniqueUserID string
	CoachID      *uint
	Delivery     messaging.DeliveryReport
}

// StudentView is a player assigned to a coach together with profile data.
type StudentView struct {
	models.PersonSummary
	Phone       string             `json:"phone"`
	Age         int                `json:"age"`
	Gender      string             `json:"gender"`
	Experience  string             `json:"experience"`
	Affiliation models.Affiliation `json:"affiliation"`
	JoinedOn    *time.Time         `json:"joinedOn,omitempty"`
}

type AccountService struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier *Notifier
	delivery Deliverer
}

func NewAccountService(db *gorm.DB, clk clock.Clock, notifier *Notifier, delivery Deliverer) *AccountService {
	return &AccountService{db: db, clock: clk, notifier: notifier, delivery: delivery}
}

var requestableRoles = map[string]string{
	models.RolePlayer:    "Player",
	models.RoleCoach:     "Coach",
	models.RoleVolunteer: "Volunteer",
}

// Signup validates an application and stores it as a pending request. Every
// admin is told about it; that part never fails the signup.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.RoleRequest, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if in.FirstName == "" || in.Email == "" || in.Phone == "" ||
		in.Password == "" || in.ConfirmPassword == "" || in.Role == "" {
		return nil, apperr.Validation("Please fill all required fields!")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.Validation("Passwords do not match!")
	}
	roleLabel, ok := requestableRoles[in.Role]
	if !ok {
		return nil, apperr.Validation("Invalid role %q", in.Role)
	}

	db := s.db.WithContext(ctx)
	var affiliation models.Affiliation
	if in.Role == models.RolePlayer {
		var err error
		if affiliation, err = s.playerAffiliation(db, in); err != nil {
			return nil, err
		}
	}

	var count int64
	if err := db.Model(&models.Person{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check person: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("User already registered!")
	}
	if err := db.Model(&models.RoleRequest{}).
		Where("applicant_email = ? AND status = ?", in.Email, models.RequestPending).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Signup request already pending!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	req := models.RoleRequest{
		ApplicantInfo: models.ApplicantInfo{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Phone:     in.Phone,
		},
		Affiliation:   affiliation,
		RequestedRole: in.Role,
		PasswordHash:  string(hash),
		Status:        models.RequestPending,
	}
	if in.Role == models.RolePlayer {
		req.ApplicantInfo.Age = in.Age
		req.ApplicantInfo.Gender = in.Gender
		req.ApplicantInfo.Experience = in.Experience
	}
	if err := db.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"request_id": req.ID,
		"role":       req.RequestedRole,
	}).Info("Signup request stored.")

	s.notifyAdmins(ctx, Event{
		Type:              "account_request",
		Title:             "New Account Request",
		Message:           fmt.Sprintf("%s %s has applied for %s account.", in.FirstName, in.LastName, roleLabel),
		RelatedEntityID:   req.ID,
		RelatedEntityType: "role_request",
	})
	return &req, nil
}

func (s *AccountService) playerAffiliation(db *gorm.DB, in SignupInput) (models.Affiliation, error) {
	if in.Age == 0 || in.Gender == "" || in.Experience == "" {
		return models.Affiliation{}, apperr.Validation("Please fill all player details!")
	}
	if in.Age < 1 || in.Age > 120 {
		return models.Affiliation{}, apperr.Validation("Age must be between 1 and 120")
	}
	if in.AffiliationType == "" || in.AffiliationID == 0 {
		return models.Affiliation{}, apperr.Validation("Please select your school or community!")
	}
	if in.AffiliationType != models.AffiliationSchool && in.AffiliationType != models.AffiliationCommunity {
		return models.Affiliation{}, apperr.Validation("Invalid affiliation type")
	}

	var inst models.Institution
	err := db.First(&inst, in.AffiliationID).Error
	if apperr.IsNotFound(err) {
		return models.Affiliation{}, apperr.Validation("Selected %s not found", in.AffiliationType)
	}
	if err != nil {
		return models.Affiliation{}, fmt.Errorf("load institution: %w", err)
	}
	if inst.Type != in.AffiliationType {
		return models.Affiliation{}, apperr.Validation("Selected %s not found", in.AffiliationType)
	}
	return models.Affiliation{
		Type:          inst.Type,
		InstitutionID: inst.ID,
		Name:          inst.Name,
		Location:      inst.Location,
	}, nil
}

// notifyAdmins writes one notification per admin concurrently and waits for all.
func (s *AccountService) notifyAdmins(ctx context.Context, ev Event) {
	var admins []uint
	if err := s.db.WithContext(ctx).Model(&models.Person{}).
		Scopes(models.WithRole(models.RoleAdmin)).
		Pluck("persons.id", &admins).Error; err != nil {
		logrus.WithError(err).Warn("Could not load admins for notification.")
		return
	}

	var g errgroup.Group
	for _, id := range admins {
		id := id
		g.Go(func() error {
			if _, err := s.notifier.Create(ctx, id, ev); err != nil {
				logrus.WithError(err).WithField("admin_id", id).Warn("Admin notification failed.")
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Approve turns a pending request into a person with a profile and a login
// code. Each step is idempotent; a failure part way leaves earlier steps in
// place and the request pending, so approval can be retried.
func (s *AccountService) Approve(ctx context.Context, requestID, coachID, reviewerID uint) (*ApprovalResult, error) {
	db := s.db.WithContext(ctx)

	req, err := s.pendingRequest(db, requestID)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"request_id": req.ID, "role": req.RequestedRole})

	var coach *models.Person
	if req.RequestedRole == models.RolePlayer {
		if coachID == 0 {
			coachID = s.resolveCoach(db, req.Affiliation)
		}
		if coachID != 0 {
			if coach, err = s.loadCoach(db, coachID); err != nil {
				return nil, err
			}
		}
	}

	now := s.clock.Now()
	code := GenerateUniqueCode(req.RequestedRole, now)

	person, err := s.upsertPerson(db, req, code, reviewerID, now)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProfile(db, req, person.ID, coach, now); err != nil {
		return nil, err
	}

	result := &ApprovalResult{PersonID: person.ID, UniqueUserID: person.UniqueUserID}
	if coach != nil {
		result.CoachID = &coach.ID
		s.linkCoach(ctx, db, req, person, coach)
	}

	if err := db.Model(req).Updates(map[string]any{
		"status":         models.RequestApproved,
		"reviewed_at":    now,
		"reviewed_by_id": nullableID(reviewerID),
	}).Error; err != nil {
		return nil, fmt.Errorf("mark request approved: %w", err)
	}

	roleLabel := req.RequestedRole
	s.notifier.Send(ctx, []uint{person.ID}, Event{
		Type:              "account_approved",
		Title:             "Account Approved",
		Message:           fmt.Sprintf("Your %s account has been approved! Your User ID is %s.", roleLabel, person.UniqueUserID),
		RelatedEntityID:   person.ID,
		RelatedEntityType: "account",
	})

	if err := s.ensureCredential(db, person); err != nil {
		log.WithError(err).Warn("Could not record credential pool entry.")
	}

	result.Delivery = s.delivery.Deliver(ctx, messaging.Delivery{
		Email:   person.Email,
		Subject: "Account Approved - Welcome to YUltimate Hub!",
		Text:    approvalText(person, roleLabel),
		HTML:    approvalHTML(person, roleLabel),
		Phone:   person.Phone,
		SMS: fmt.Sprintf("YUltimate Hub: Your %s account is approved! User ID: %s. Welcome to the team!",
			strings.ToUpper(roleLabel), person.UniqueUserID),
	})

	log.WithFields(logrus.Fields{
		"person_id":  person.ID,
		"email_sent": result.Delivery.EmailSent,
		"sms_sent":   result.Delivery.SMSSent,
	}).Info("Signup request approved.")
	return result, nil
}

// Reject closes a pending request. A person already holding the email is told.
func (s *AccountService) Reject(ctx context.Context, requestID, reviewerID uint, remarks string) error {
	db := s.db.WithContext(ctx)

	req, err := s.pendingRequest(db, requestID)
	if err != nil {
		return err
	}

	if err := db.Model(req).Updates(map[string]any{
		"status":         models.RequestRejected,
		"reviewed_at":    s.clock.Now(),
		"reviewed_by_id": nullableID(reviewerID),
		"remarks":        remarks,
	}).Error; err != nil {
		return fmt.Errorf("mark request rejected: %w", err)
	}

	var person models.Person
	err = db.Where("email = ?", req.ApplicantInfo.Email).First(&person).Error
	switch {
	case err == nil:
		s.notifier.Send(ctx, []uint{person.ID}, Event{
			Type:              "account_rejected",
			Title:             "Account Request Rejected",
			Message:           fmt.Sprintf("Your %s account request has been rejected. Please contact admin for more information.", req.RequestedRole),
			RelatedEntityID:   req.ID,
			RelatedEntityType: "role_request",
		})
	case !apperr.IsNotFound(err):
		logrus.WithError(err).WithField("request_id", req.ID).Warn("Could not look up applicant for rejection notice.")
	}

	logrus.WithField("request_id", req.ID).Info("Signup request rejected.")
	return nil
}

func (s *AccountService) pendingRequest(db *gorm.DB, requestID uint) (*models.RoleRequest, error) {
	if requestID == 0 {
		return nil, apperr.Validation("Request ID is required")
	}
	var req models.RoleRequest
	err := db.First(&req, requestID).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Request not found!")
	}
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req.Status != models.RequestPending {
		return nil, apperr.Conflict("Request already %s", req.Status)
	}
	return &req, nil
}

// resolveCoach picks a coach for a player from the applicant's institution:
// a coach affiliated with it and on its coach list first, else the first
// affiliated coach. Zero means none.
func (s *AccountService) resolveCoach(db *gorm.DB, aff models.Affiliation) uint {
	if !aff.IsSet() {
		return 0
	}
	log := logrus.WithField("institution_id", aff.InstitutionID)

	var inst models.Institution
	if err := db.First(&inst, aff.InstitutionID).Error; err != nil {
		log.WithError(err).Debug("Institution lookup for coach matching failed.")
		return 0
	}

	var candidates []uint
	if err := db.Model(&models.CoachProfile{}).
		Where("affiliation_institution_id = ? AND affiliation_type = ?", inst.ID, aff.Type).
		Order("id").Pluck("person_id", &candidates).Error; err != nil {
		log.WithError(err).Warn("Coach profile lookup failed.")
		return 0
	}
	if len(candidates) == 0 {
		return 0
	}

	var linked []uint
	if err := db.Model(&models.InstitutionCoach{}).
		Where("institution_id = ?", inst.ID).
		Pluck("person_id", &linked).Error; err != nil {
		log.WithError(err).Warn("Institution coach list lookup failed.")
	}
	onList := make(map[uint]bool, len(linked))
	for _, id := range linked {
		onList[id] = true
	}
	for _, id := range candidates {
		if onList[id] {
			return id
		}
	}
	return candidates[0]
}

func (s *AccountService) loadCoach(db *gorm.DB, coachID uint) (*models.Person, error) {
	var coach models.Person
	err := db.Preload("Roles").First(&coach, coachID).Error
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("load coach: %w", err)
	}
	if err != nil || !coach.HasRole(models.RoleCoach) {
		return nil, apperr.Validation("Invalid coach selected")
	}
	return &coach, nil
}

// upsertPerson adds the requested role to an existing account with the same
// email, filling only empty fields, or creates a new one.
func (s *AccountService) upsertPerson(db *gorm.DB, req *models.RoleRequest, code string, reviewerID uint, now time.Time) (*models.Person, error) {
	var person models.Person
	err := db.Preload("Roles").Where("email = ?", req.ApplicantInfo.Email).First(&person).Error
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("load person: %w", err)
	}

	if err == nil {
		if person.FirstName == "" {
			person.FirstName = req.ApplicantInfo.FirstName
		}
		if person.LastName == "" {
			person.LastName = req.ApplicantInfo.LastName
		}
		if person.Phone == "" {
			person.Phone = req.ApplicantInfo.Phone
		}
		if person.PasswordHash == "" {
			person.PasswordHash = req.PasswordHash
		}
		if person.UniqueUserID == "" {
			person.UniqueUserID = code
		}
		person.ApprovedByID = nullableID(reviewerID)
		person.ApprovedAt = &now
		if err := db.Omit(clause.Associations).Save(&person).Error; err != nil {
			return nil, fmt.Errorf("update person: %w", err)
		}
		if !person.HasRole(req.RequestedRole) {
			role := models.PersonRole{PersonID: person.ID, Role: req.RequestedRole}
			if err := db.Create(&role).Error; err != nil && !apperr.IsUniqueViolation(err) {
				return nil, fmt.Errorf("add role: %w", err)
			}
			person.Roles = append(person.Roles, role)
		}
		return &person, nil
	}

	person = models.Person{
		FirstName:     req.ApplicantInfo.FirstName,
		LastName:      req.ApplicantInfo.LastName,
		Email:         req.ApplicantInfo.Email,
		Phone:         req.ApplicantInfo.Phone,
		UniqueUserID:  code,
		PasswordHash:  req.PasswordHash,
		Roles:         []models.PersonRole{{Role: req.RequestedRole}},
		AccountStatus: models.AccountActive,
		ApprovedByID:  nullableID(reviewerID),
		ApprovedAt:    &now,
	}
	if err := db.Create(&person).Error; err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("An account with this email or user ID already exists")
		}
		return nil, fmt.Errorf("create person: %w", err)
	}
	return &person, nil
}

func (s *AccountService) ensureProfile(db *gorm.DB, req *models.RoleRequest, personID uint, coach *models.Person, now time.Time) error {
	switch req.RequestedRole {
	case models.RolePlayer:
		var profile models.PlayerProfile
		err := db.Where("person_id = ?", personID).First(&profile).Error
		if err == nil {
			if profile.AssignedCoachID == nil && coach != nil {
				if err := db.Model(&profile).Update("assigned_coach_id", coach.ID).Error; err != nil {
					return fmt.Errorf("assign coach: %w", err)
				}
			}
			return nil
		}
		if !apperr.IsNotFound(err) {
			return fmt.Errorf("load player profile: %w", err)
		}
		profile = models.PlayerProfile{
			PersonID:        personID,
			Age:             req.ApplicantInfo.Age,
			Gender:          req.ApplicantInfo.Gender,
			Experience:      req.ApplicantInfo.Experience,
			Affiliation:     req.Affiliation,
			TransferHistory: []models.TransferHistoryEntry{},
		}
		if req.Affiliation.IsSet() {
			profile.JoinedOn = &now
		}
		if coach != nil {
			profile.AssignedCoachID = &coach.ID
		}
		return createIfAbsent(db, &profile, "player profile")

	case models.RoleCoach:
		var existing int64
		if err := db.Model(&models.CoachProfile{}).Where("person_id = ?", personID).Count(&existing).Error; err != nil {
			return fmt.Errorf("load coach profile: %w", err)
		}
		if existing > 0 {
			return nil
		}
		return createIfAbsent(db, &models.CoachProfile{
			PersonID:       personID,
			Certifications: []string{},
			Affiliation:    req.Affiliation,
		}, "coach profile")

	case models.RoleVolunteer:
		var existing int64
		if err := db.Model(&models.VolunteerProfile{}).Where("person_id = ?", personID).Count(&existing).Error; err != nil {
			return fmt.Errorf("load volunteer profile: %w", err)
		}
		if existing > 0 {
			return nil
		}
		return createIfAbsent(db, &models.VolunteerProfile{PersonID: personID, Skills: []string{}}, "volunteer profile")
	}
	return nil
}

// createIfAbsent treats losing a unique-key race as success.
func createIfAbsent(db *gorm.DB, row any, what string) error {
	if err := db.Create(row).Error; err != nil && !apperr.IsUniqueViolation(err) {
		return fmt.Errorf("create %s: %w", what, err)
	}
	return nil
}

// linkCoach puts the coach on the institution's coach list and tells both sides.
func (s *AccountService) linkCoach(ctx context.Context, db *gorm.DB, req *models.RoleRequest, player, coach *models.Person) {
	if req.Affiliation.IsSet() {
		link := models.InstitutionCoach{InstitutionID: req.Affiliation.InstitutionID, PersonID: coach.ID}
		if err := db.Where(&link).FirstOrCreate(&link).Error; err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"institution_id": link.InstitutionID,
				"coach_id":       coach.ID,
			}).Warn("Could not link coach to institution.")
		}
	}

	s.notifier.Send(ctx, []uint{coach.ID}, Event{
		Type:              "player_assigned",
		Title:             "New Player Assigned",
		Message:           fmt.Sprintf("A new player %s has been assigned to you.", player.FullName()),
		RelatedEntityID:   player.ID,
		RelatedEntityType: "player",
	})
	s.notifier.Send(ctx, []uint{player.ID}, Event{
		Type:              "coach_assigned",
		Title:             "Coach Assigned",
		Message:           fmt.Sprintf("You have been assigned to Coach %s.", coach.FullName()),
		RelatedEntityID:   coach.ID,
		RelatedEntityType: "coach",
	})

	s.delivery.Deliver(ctx, messaging.Delivery{
		Email:   coach.Email,
		Subject: "New Player Assigned - YUltimate Hub",
		Text: fmt.Sprintf("Hello Coach %s,\n\nA new player has been assigned to you.\n\nPlayer: %s\nEmail: %s\nPhone: %s\nUser ID: %s\n",
			coach.FirstName, player.FullName(), player.Email, player.Phone, player.UniqueUserID),
		Phone: coach.Phone,
		SMS:   fmt.Sprintf("YUltimate Hub: New player %s assigned to you. Check your email for details.", player.FullName()),
	})
}

func (s *AccountService) ensureCredential(db *gorm.DB, person *models.Person) error {
	cred := models.CredentialPool{
		PersonID:     person.ID,
		UniqueUserID: person.UniqueUserID,
		Status:       models.CredentialActive,
		SentVia:      models.SentViaEmail,
	}
	return db.Where(models.CredentialPool{PersonID: person.ID}).FirstOrCreate(&cred).Error
}

// PendingRequests lists open applications, newest first.
func (s *AccountService) PendingRequests(ctx context.Context) ([]models.RoleRequest, error) {
	var reqs []models.RoleRequest
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.RequestPending).
		Order("created_at DESC").Order("id DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}

// ActiveCoaches lists coaches whose account is active.
func (s *AccountService) ActiveCoaches(ctx context.Context) ([]models.PersonSummary, error) {
	return s.summaries(ctx, models.RoleCoach, true)
}

func (s *AccountService) Coaches(ctx context.Context) ([]models.PersonSummary, error) {
	return s.summaries(ctx, models.RoleCoach, false)
}

func (s *AccountService) Players(ctx context.Context) ([]models.PersonSummary, error) {
	return s.summaries(ctx, models.RolePlayer, false)
}

func (s *AccountService) summaries(ctx context.Context, role string, activeOnly bool) ([]models.PersonSummary, error) {
	q := s.db.WithContext(ctx).Scopes(models.WithRole(role))
	if activeOnly {
		q = q.Where("account_status = ?", models.AccountActive)
	}
	var people []models.Person
	if err := q.Order("first_name").Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", role, err)
	}
	out := make([]models.PersonSummary, 0, len(people))
	for _, p := range people {
		out = append(out, p.Summary())
	}
	return out, nil
}

// CoachStudents lists the players assigned to a coach.
func (s *AccountService) CoachStudents(ctx context.Context, coachID uint) ([]StudentView, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.loadCoach(db, coachID); err != nil {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			return nil, apperr.NotFound("Coach not found")
		}
		return nil, err
	}

	var profiles []models.PlayerProfile
	if err := db.Preload("Person").
		Where("assigned_coach_id = ?", coachID).
		Order("id").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	out := make([]StudentView, 0, len(profiles))
	for _, p := range profiles {
		if p.Person == nil {
			continue
		}
		out = append(out, StudentView{
			PersonSummary: p.Person.Summary(),
			Phone:         p.Person.Phone,
			Age:           p.Age,
			Gender:        p.Gender,
			Experience:    p.Experience,
			Affiliation:   p.Affiliation,
			JoinedOn:      p.JoinedOn,
		})
	}
	return out, nil
}

// Me returns the caller's account with roles loaded.
func (s *AccountService) Me(ctx context.Context, personID uint) (*models.Person, error) {
	var person models.Person
	err := s.db.WithContext(ctx).Preload("Roles").First(&person, personID).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Account not found!")
	}
	if err != nil {
		return nil, fmt.Errorf("load person: %w", err)
	}
	return &person, nil
}

// GenerateUniqueCode builds a login code from the role prefix and the time in
// milliseconds, e.g. PLA-1700000000000.
func GenerateUniqueCode(role string, now time.Time) string {
	prefix := strings.ToUpper(role)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}

func nullableID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func approvalText(p *models.Person, role string) string {
	return fmt.Sprintf("Hello %s,\n\nYour %s account has been approved.\n\nUser ID: %s\n\nUse this User ID and the password you chose at signup to log in.\n\nWelcome to YUltimate Hub!\n",
		p.FullName(), role, p.UniqueUserID)
}

func approvalHTML(p *models.Person, role string) string {
	return fmt.Sprintf(`<h2>Welcome to YUltimate Hub!</h2>
<p>Hello %s,</p>
<p>Your <strong>%s</strong> account has been approved.</p>
<p>User ID: <strong>%s</strong></p>
<p>Use this User ID and the password you chose at signup to log in.</p>`,
		html.EscapeString(p.FullName()), html.EscapeString(role), html.EscapeString(p.UniqueUserID))
}
