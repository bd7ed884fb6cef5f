package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/auth"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/testutil"
)

type AccountSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	clock    *clock.Mock
	pub      *recordingPublisher
	delivery *recordingDelivery
	accounts *AccountService
	login    *AuthService
	admin    *models.Person
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountSuite))
}

func (s *AccountSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.SetupTestDB(s.T())
	s.clock = newClock()
	s.pub = &recordingPublisher{}
	s.delivery = &recordingDelivery{}
	notifier := NewNotifier(s.db, s.clock, s.pub)
	s.accounts = NewAccountService(s.db, s.clock, notifier, s.delivery)
	s.login = NewAuthService(s.db, auth.NewTokenManager("test-secret", 7*24*time.Hour, s.clock), nil, "admin123")
	s.admin = createPerson(s.T(), s.db, "admin123", "admin@hub.test", "", models.RoleAdmin)
}

func (s *AccountSuite) volunteerSignup(email string) *models.RoleRequest {
	req, err := s.accounts.Signup(s.ctx, SignupInput{
		FirstName: "A", Email: email, Phone: "123",
		Password: "p", ConfirmPassword: "p", Role: "volunteer",
	})
	s.Require().NoError(err)
	return req
}

func (s *AccountSuite) playerSignup(email string, inst *models.Institution) *models.RoleRequest {
	req, err := s.accounts.Signup(s.ctx, SignupInput{
		FirstName: "Riya", LastName: "Rao", Email: email, Phone: "9876543210",
		Password: "secret", ConfirmPassword: "secret", Role: "player",
		Age: 14, Gender: "female", Experience: "beginner",
		AffiliationType: inst.Type, AffiliationID: inst.ID,
	})
	s.Require().NoError(err)
	return req
}

func (s *AccountSuite) assertErrType(err error, target any) {
	s.Require().Error(err)
	s.True(errors.As(err, target), "unexpected error %T: %v", err, err)
}

// Signup, approval and login end to end

func (s *AccountSuite) TestVolunteerSignupApproveLogin() {
	req := s.volunteerSignup("a@x.com")
	s.Equal(models.RequestPending, req.Status)

	var stored models.RoleRequest
	s.Require().NoError(s.db.First(&stored, req.ID).Error)
	s.Equal(models.RequestPending, stored.Status)
	s.NotEqual("p", stored.PasswordHash)

	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)
	s.Equal(fmt.Sprintf("VOL-%d", epoch.UnixMilli()), res.UniqueUserID)
	s.Nil(res.CoachID)

	var person models.Person
	s.Require().NoError(s.db.Preload("Roles").First(&person, res.PersonID).Error)
	s.Equal([]string{models.RoleVolunteer}, person.RoleNames())
	s.Equal(res.UniqueUserID, person.UniqueUserID)

	var creds []models.CredentialPool
	s.Require().NoError(s.db.Where("person_id = ?", person.ID).Find(&creds).Error)
	s.Require().Len(creds, 1)
	s.Equal(models.SentViaEmail, creds[0].SentVia)

	var volunteer models.VolunteerProfile
	s.NoError(s.db.Where("person_id = ?", person.ID).First(&volunteer).Error)

	result, err := s.login.Login(s.ctx, LoginInput{UniqueUserID: res.UniqueUserID, Password: "p"})
	s.Require().NoError(err)
	s.NotEmpty(result.Token)
	s.Equal("Login successful!", result.Message)
}

func (s *AccountSuite) TestSignupNotifiesAdmins() {
	second := createPerson(s.T(), s.db, "ADM-2", "admin2@hub.test", "", models.RoleAdmin)
	req := s.volunteerSignup("a@x.com")

	for _, admin := range []*models.Person{s.admin, second} {
		rows := notificationsFor(s.T(), s.db, admin.ID)
		s.Require().Len(rows, 1)
		s.Equal("account_request", rows[0].Type)
		s.Equal("New Account Request", rows[0].Title)
		s.Equal("A  has applied for Volunteer account.", rows[0].Message)
		s.Equal(req.ID, rows[0].RelatedEntityID)
		s.Equal("role_request", rows[0].RelatedEntityType)
	}
	s.Equal(2, s.pub.count())
}

func (s *AccountSuite) TestApprovalNotifiesAndDelivers() {
	req := s.volunteerSignup("a@x.com")
	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)

	rows := notificationsFor(s.T(), s.db, res.PersonID)
	s.Require().Len(rows, 1)
	s.Equal("account_approved", rows[0].Type)
	s.Contains(rows[0].Message, res.UniqueUserID)

	s.Require().Len(s.delivery.sent, 1)
	sent := s.delivery.sent[0]
	s.Equal("a@x.com", sent.Email)
	s.Equal("Account Approved - Welcome to YUltimate Hub!", sent.Subject)
	s.Equal("123", sent.Phone)
	s.Contains(sent.SMS, "VOLUNTEER account is approved! User ID: "+res.UniqueUserID)

	var stored models.RoleRequest
	s.Require().NoError(s.db.First(&stored, req.ID).Error)
	s.Equal(models.RequestApproved, stored.Status)
	s.Require().NotNil(stored.ReviewedAt)
	s.Require().NotNil(stored.ReviewedByID)
	s.Equal(s.admin.ID, *stored.ReviewedByID)
}

// Signup validation

func (s *AccountSuite) TestSignupValidation() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	valid := SignupInput{
		FirstName: "Riya", Email: "r@x.com", Phone: "1", Password: "p", ConfirmPassword: "p",
		Role: "player", Age: 14, Gender: "f", Experience: "none",
		AffiliationType: models.AffiliationSchool, AffiliationID: school.ID,
	}

	tests := []struct {
		name   string
		mutate func(in *SignupInput)
	}{
		{"missing first name", func(in *SignupInput) { in.FirstName = "" }},
		{"missing email", func(in *SignupInput) { in.Email = " " }},
		{"missing phone", func(in *SignupInput) { in.Phone = "" }},
		{"missing confirmation", func(in *SignupInput) { in.ConfirmPassword = "" }},
		{"password mismatch", func(in *SignupInput) { in.ConfirmPassword = "q" }},
		{"missing role", func(in *SignupInput) { in.Role = "" }},
		{"unknown role", func(in *SignupInput) { in.Role = "admin" }},
		{"player missing age", func(in *SignupInput) { in.Age = 0 }},
		{"player age too high", func(in *SignupInput) { in.Age = 121 }},
		{"player negative age", func(in *SignupInput) { in.Age = -3 }},
		{"player missing gender", func(in *SignupInput) { in.Gender = "" }},
		{"player missing experience", func(in *SignupInput) { in.Experience = "" }},
		{"player missing affiliation", func(in *SignupInput) { in.AffiliationID = 0 }},
		{"bad affiliation type", func(in *SignupInput) { in.AffiliationType = "club" }},
		{"type mismatch", func(in *SignupInput) { in.AffiliationType = models.AffiliationCommunity }},
		{"unknown institution", func(in *SignupInput) { in.AffiliationID = 9999 }},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := valid
			tt.mutate(&in)
			_, err := s.accounts.Signup(s.ctx, in)
			var ve *apperr.ValidationError
			s.assertErrType(err, &ve)
		})
	}

	var count int64
	s.Require().NoError(s.db.Model(&models.RoleRequest{}).Count(&count).Error)
	s.Zero(count)
	s.Empty(notificationsFor(s.T(), s.db, s.admin.ID))
}

func (s *AccountSuite) TestSignupStoresPlayerAffiliation() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	req := s.playerSignup("riya@x.com", school)

	s.Equal(school.ID, req.Affiliation.InstitutionID)
	s.Equal("Green School", req.Affiliation.Name)
	s.Equal("Bengaluru", req.Affiliation.Location)
	s.Equal(14, req.ApplicantInfo.Age)
}

func (s *AccountSuite) TestSignupConflicts() {
	s.volunteerSignup("a@x.com")
	_, err := s.accounts.Signup(s.ctx, SignupInput{
		FirstName: "A", Email: "A@X.com", Phone: "1", Password: "p", ConfirmPassword: "p", Role: "coach",
	})
	var ce *apperr.ConflictError
	s.assertErrType(err, &ce)
	s.Equal("Signup request already pending!", err.Error())

	_, err = s.accounts.Signup(s.ctx, SignupInput{
		FirstName: "B", Email: "admin@hub.test", Phone: "1", Password: "p", ConfirmPassword: "p", Role: "volunteer",
	})
	s.assertErrType(err, &ce)
	s.Equal("User already registered!", err.Error())
}

// Approval

func (s *AccountSuite) TestApproveTwiceConflicts() {
	req := s.volunteerSignup("a@x.com")
	_, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)

	s.clock.Advance(time.Millisecond)
	_, err = s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	var ce *apperr.ConflictError
	s.assertErrType(err, &ce)
}

func (s *AccountSuite) TestApproveMissingRequest() {
	_, err := s.accounts.Approve(s.ctx, 4242, 0, s.admin.ID)
	var ne *apperr.NotFoundError
	s.assertErrType(err, &ne)
}

func (s *AccountSuite) TestApprovePlayerPrefersListedCoach() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	unlisted := createPerson(s.T(), s.db, "COA-1", "c1@x.com", "pw", models.RoleCoach)
	listed := createPerson(s.T(), s.db, "COA-2", "c2@x.com", "pw", models.RoleCoach)
	createCoachProfile(s.T(), s.db, unlisted, school)
	createCoachProfile(s.T(), s.db, listed, school)
	s.Require().NoError(s.db.Create(&models.InstitutionCoach{InstitutionID: school.ID, PersonID: listed.ID}).Error)

	req := s.playerSignup("riya@x.com", school)
	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)
	s.Require().NotNil(res.CoachID)
	s.Equal(listed.ID, *res.CoachID)
	s.Contains(res.UniqueUserID, "PLA-")

	var profile models.PlayerProfile
	s.Require().NoError(s.db.Where("person_id = ?", res.PersonID).First(&profile).Error)
	s.Require().NotNil(profile.AssignedCoachID)
	s.Equal(listed.ID, *profile.AssignedCoachID)
	s.Equal(school.ID, profile.Affiliation.InstitutionID)
	s.NotNil(profile.JoinedOn)

	coachRows := notificationsFor(s.T(), s.db, listed.ID)
	s.Require().Len(coachRows, 1)
	s.Equal("player_assigned", coachRows[0].Type)
	s.Equal("A new player Riya Rao has been assigned to you.", coachRows[0].Message)

	playerRows := notificationsFor(s.T(), s.db, res.PersonID)
	s.Equal([]string{"coach_assigned", "account_approved"}, notificationTypes(playerRows))
	s.Equal("You have been assigned to Coach FirstCOA-2 Last.", playerRows[0].Message)

	s.Equal([]string{
		"New Player Assigned - YUltimate Hub",
		"Account Approved - Welcome to YUltimate Hub!",
	}, s.delivery.subjects())
}

func (s *AccountSuite) TestApprovePlayerFallsBackToFirstAffiliatedCoach() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	other := createInstitution(s.T(), s.db, "Blue School", models.AffiliationSchool)
	elsewhere := createPerson(s.T(), s.db, "COA-0", "c0@x.com", "pw", models.RoleCoach)
	first := createPerson(s.T(), s.db, "COA-1", "c1@x.com", "pw", models.RoleCoach)
	createCoachProfile(s.T(), s.db, elsewhere, other)
	createCoachProfile(s.T(), s.db, first, school)

	req := s.playerSignup("riya@x.com", school)
	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)
	s.Require().NotNil(res.CoachID)
	s.Equal(first.ID, *res.CoachID)

	var links int64
	s.Require().NoError(s.db.Model(&models.InstitutionCoach{}).
		Where("institution_id = ? AND person_id = ?", school.ID, first.ID).Count(&links).Error)
	s.Equal(int64(1), links)
}

func (s *AccountSuite) TestApprovePlayerWithoutCoach() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	req := s.playerSignup("riya@x.com", school)

	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)
	s.Nil(res.CoachID)

	var profile models.PlayerProfile
	s.Require().NoError(s.db.Where("person_id = ?", res.PersonID).First(&profile).Error)
	s.Nil(profile.AssignedCoachID)
}

func (s *AccountSuite) TestApproveRejectsInvalidCoach() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	notCoach := createPerson(s.T(), s.db, "VOL-1", "v@x.com", "pw", models.RoleVolunteer)
	req := s.playerSignup("riya@x.com", school)

	_, err := s.accounts.Approve(s.ctx, req.ID, notCoach.ID, s.admin.ID)
	var ve *apperr.ValidationError
	s.assertErrType(err, &ve)

	var count int64
	s.Require().NoError(s.db.Model(&models.Person{}).Where("email = ?", "riya@x.com").Count(&count).Error)
	s.Zero(count)
	var stored models.RoleRequest
	s.Require().NoError(s.db.First(&stored, req.ID).Error)
	s.Equal(models.RequestPending, stored.Status)
}

func (s *AccountSuite) TestApproveAddsRoleToExistingPerson() {
	coach := createPerson(s.T(), s.db, "COA-7", "dual@x.com", "pw", models.RoleCoach)
	s.Require().NoError(s.db.Model(coach).Update("phone", "").Error)

	// an application stored before the account existed
	req := models.RoleRequest{
		ApplicantInfo: models.ApplicantInfo{FirstName: "Other", Email: "dual@x.com", Phone: "5550100"},
		RequestedRole: models.RoleVolunteer,
		PasswordHash:  "irrelevant",
		Status:        models.RequestPending,
	}
	s.Require().NoError(s.db.Create(&req).Error)

	res, err := s.accounts.Approve(s.ctx, req.ID, 0, s.admin.ID)
	s.Require().NoError(err)
	s.Equal(coach.ID, res.PersonID)
	s.Equal("COA-7", res.UniqueUserID)

	var person models.Person
	s.Require().NoError(s.db.Preload("Roles").First(&person, coach.ID).Error)
	s.ElementsMatch([]string{models.RoleCoach, models.RoleVolunteer}, person.RoleNames())
	s.Equal("FirstCOA-7", person.FirstName)
	s.Equal("5550100", person.Phone)
	s.NotEqual("irrelevant", person.PasswordHash)
}

// Rejection

func (s *AccountSuite) TestRejectWithoutAccount() {
	req := s.volunteerSignup("a@x.com")
	s.Require().NoError(s.accounts.Reject(s.ctx, req.ID, s.admin.ID, "incomplete"))

	var stored models.RoleRequest
	s.Require().NoError(s.db.First(&stored, req.ID).Error)
	s.Equal(models.RequestRejected, stored.Status)
	s.Equal("incomplete", stored.Remarks)
	s.NotNil(stored.ReviewedAt)

	var people int64
	s.Require().NoError(s.db.Model(&models.Person{}).Count(&people).Error)
	s.Equal(int64(1), people)

	err := s.accounts.Reject(s.ctx, req.ID, s.admin.ID, "")
	var ce *apperr.ConflictError
	s.assertErrType(err, &ce)
}

func (s *AccountSuite) TestRejectNotifiesExistingAccount() {
	existing := createPerson(s.T(), s.db, "VOL-1", "v@x.com", "pw", models.RoleVolunteer)
	req := models.RoleRequest{
		ApplicantInfo: models.ApplicantInfo{FirstName: "V", Email: "v@x.com", Phone: "1"},
		RequestedRole: models.RoleCoach,
		PasswordHash:  "x",
		Status:        models.RequestPending,
	}
	s.Require().NoError(s.db.Create(&req).Error)

	s.Require().NoError(s.accounts.Reject(s.ctx, req.ID, s.admin.ID, ""))

	rows := notificationsFor(s.T(), s.db, existing.ID)
	s.Require().Len(rows, 1)
	s.Equal("account_rejected", rows[0].Type)
	s.Equal("Your coach account request has been rejected. Please contact admin for more information.", rows[0].Message)
	s.Equal(req.ID, rows[0].RelatedEntityID)
}

func (s *AccountSuite) TestRejectMissingRequest() {
	err := s.accounts.Reject(s.ctx, 77, s.admin.ID, "")
	var ne *apperr.NotFoundError
	s.assertErrType(err, &ne)
}

// Queries

func (s *AccountSuite) TestPendingRequestsNewestFirst() {
	first := s.volunteerSignup("a@x.com")
	second := s.volunteerSignup("b@x.com")
	done := s.volunteerSignup("c@x.com")
	_, err := s.accounts.Approve(s.ctx, done.ID, 0, s.admin.ID)
	s.Require().NoError(err)

	reqs, err := s.accounts.PendingRequests(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(reqs, 2)
	s.Equal(second.ID, reqs[0].ID)
	s.Equal(first.ID, reqs[1].ID)
}

func (s *AccountSuite) TestActiveCoachesSkipsSuspended() {
	active := createPerson(s.T(), s.db, "COA-1", "c1@x.com", "pw", models.RoleCoach)
	suspended := createPerson(s.T(), s.db, "COA-2", "c2@x.com", "pw", models.RoleCoach)
	s.Require().NoError(s.db.Model(suspended).Update("account_status", models.AccountSuspended).Error)

	coaches, err := s.accounts.ActiveCoaches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(coaches, 1)
	s.Equal(active.ID, coaches[0].ID)

	all, err := s.accounts.Coaches(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *AccountSuite) TestCoachStudents() {
	school := createInstitution(s.T(), s.db, "Green School", models.AffiliationSchool)
	coach := createPerson(s.T(), s.db, "COA-1", "c1@x.com", "pw", models.RoleCoach)
	createCoachProfile(s.T(), s.db, coach, school)
	req := s.playerSignup("riya@x.com", school)
	res, err := s.accounts.Approve(s.ctx, req.ID, coach.ID, s.admin.ID)
	s.Require().NoError(err)

	students, err := s.accounts.CoachStudents(s.ctx, coach.ID)
	s.Require().NoError(err)
	s.Require().Len(students, 1)
	s.Equal(res.PersonID, students[0].ID)
	s.Equal("riya@x.com", students[0].Email)
	s.Equal(14, students[0].Age)

	players, err := s.accounts.Players(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)

	_, err = s.accounts.CoachStudents(s.ctx, res.PersonID)
	var ne *apperr.NotFoundError
	s.assertErrType(err, &ne)
}

func (s *AccountSuite) TestMe() {
	me, err := s.accounts.Me(s.ctx, s.admin.ID)
	s.Require().NoError(err)
	s.Equal([]string{models.RoleAdmin}, me.RoleNames())

	_, err = s.accounts.Me(s.ctx, 999)
	var ne *apperr.NotFoundError
	s.assertErrType(err, &ne)
}

func TestGenerateUniqueCode(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	tests := map[string]string{
		models.RolePlayer:    "PLA-1700000000123",
		models.RoleCoach:     "COA-1700000000123",
		models.RoleVolunteer: "VOL-1700000000123",
	}
	for role, want := range tests {
		if got := GenerateUniqueCode(role, at); got != want {
			t.Errorf("GenerateUniqueCode(%q) = %q, want %q", role, got, want)
		}
	}
}

func (s *AccountSuite) TestApprovalEmailEscapesApplicantName() {
	p := &models.Person{FirstName: "<script>alert(1)</script>", LastName: "O'Neil", UniqueUserID: "PLA-0001"}
	body := approvalHTML(p, "player")

	s.NotContains(body, "<script>")
	s.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	s.Contains(body, "O&#39;Neil")
	s.Contains(body, "<strong>PLA-0001</strong>")
	s.Contains(approvalText(p, "player"), "O'Neil")
}
