package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/testutil"
)

type TeamSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	svc     *TeamService
	coach   *models.Person
	mine    *models.Person
	notMine *models.Person
}

func TestTeamSuite(t *testing.T) {
	suite.Run(t, new(TeamSuite))
}

func (s *TeamSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.SetupTestDB(s.T())
	s.svc = NewTeamService(s.db)

	s.coach = createPerson(s.T(), s.db, "COA-1", "c@x.com", "", models.RoleCoach)
	other := createPerson(s.T(), s.db, "COA-2", "c2@x.com", "", models.RoleCoach)
	s.mine = createPerson(s.T(), s.db, "PLA-1", "p1@x.com", "", models.RolePlayer)
	s.notMine = createPerson(s.T(), s.db, "PLA-2", "p2@x.com", "", models.RolePlayer)
	createPlayerProfile(s.T(), s.db, s.mine, &s.coach.ID, nil)
	createPlayerProfile(s.T(), s.db, s.notMine, &other.ID, nil)
}

func (s *TeamSuite) create(name string, players ...*models.Person) *models.Team {
	in := TeamInput{TeamName: name, TotalMembers: 7}
	for _, p := range players {
		in.Players = append(in.Players, models.TeamPlayer{Name: p.FullName(), PlayerID: p.ID})
	}
	team, err := s.svc.Create(s.ctx, s.coach.ID, in)
	s.Require().NoError(err)
	return team
}

func (s *TeamSuite) TestCreate() {
	team := s.create("Hawks", s.mine)
	s.Equal(s.coach.ID, team.CoachID)
	s.Require().Len(team.Players, 1)
	s.Equal(s.mine.ID, team.Players[0].PlayerID)
}

func (s *TeamSuite) TestCreateValidation() {
	_, err := s.svc.Create(s.ctx, s.coach.ID, TeamInput{TeamName: "Hawks", TotalMembers: 7})
	var ve *apperr.ValidationError
	s.True(errors.As(err, &ve), "no players: %v", err)

	_, err = s.svc.Create(s.ctx, s.coach.ID, TeamInput{
		TeamName: "Hawks", TotalMembers: 7,
		Players: []models.TeamPlayer{{PlayerID: s.mine.ID}, {PlayerID: s.notMine.ID}},
	})
	s.Require().True(errors.As(err, &ve), "foreign player: %v", err)
	s.Contains(err.Error(), "not assigned to you")

	_, err = s.svc.Create(s.ctx, s.mine.ID, TeamInput{
		TeamName: "Hawks", TotalMembers: 7, Players: []models.TeamPlayer{{PlayerID: s.mine.ID}},
	})
	var ne *apperr.NotFoundError
	s.True(errors.As(err, &ne), "not a coach: %v", err)

	tid := uint(404)
	_, err = s.svc.Create(s.ctx, s.coach.ID, TeamInput{
		TeamName: "Hawks", TotalMembers: 7, Players: []models.TeamPlayer{{PlayerID: s.mine.ID}}, TournamentID: &tid,
	})
	s.True(errors.As(err, &ne), "missing tournament: %v", err)
}

func (s *TeamSuite) TestMineNewestFirst() {
	first := s.create("Hawks", s.mine)
	second := s.create("Owls", s.mine)

	teams, err := s.svc.Mine(s.ctx, s.coach.ID)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal(second.ID, teams[0].ID)
	s.Equal(first.ID, teams[1].ID)
}

func (s *TeamSuite) TestAllStandings() {
	hawks := s.create("Hawks", s.mine)
	owls := s.create("Owls", s.mine)
	_, err := s.svc.AddRosterEntry(s.ctx, s.coach.ID, hawks.ID, s.mine.ID, 7)
	s.Require().NoError(err)

	matches := []models.Match{
		{TeamAID: hawks.ID, TeamBID: owls.ID, Status: models.MatchCompleted, WinnerTeamID: &hawks.ID},
		{TeamAID: owls.ID, TeamBID: hawks.ID, Status: models.MatchCompleted, WinnerTeamID: &hawks.ID},
		{TeamAID: hawks.ID, TeamBID: owls.ID, Status: models.MatchOngoing, WinnerTeamID: &owls.ID},
		{TeamAID: hawks.ID, TeamBID: owls.ID, Status: models.MatchCompleted},
	}
	s.Require().NoError(s.db.Create(&matches).Error)

	standings, err := s.svc.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 2)

	s.Equal("Hawks", standings[0].TeamName)
	s.Equal(2, standings[0].Wins)
	s.Equal(0, standings[0].Losses)
	s.Equal([]string{"FirstPLA-1 Last"}, standings[0].Players)

	s.Equal("Owls", standings[1].TeamName)
	s.Equal(0, standings[1].Wins)
	s.Equal(2, standings[1].Losses)
}

func (s *TeamSuite) TestAllEmpty() {
	standings, err := s.svc.All(s.ctx)
	s.Require().NoError(err)
	s.NotNil(standings)
	s.Empty(standings)
}

func (s *TeamSuite) TestAddRosterEntry() {
	team := s.create("Hawks", s.mine)

	entry, err := s.svc.AddRosterEntry(s.ctx, s.coach.ID, team.ID, s.mine.ID, 11)
	s.Require().NoError(err)
	s.Equal(11, entry.JerseyNumber)
	s.Equal(models.RosterActive, entry.Status)

	again, err := s.svc.AddRosterEntry(s.ctx, s.coach.ID, team.ID, s.mine.ID, 99)
	s.Require().NoError(err)
	s.Equal(entry.ID, again.ID)
	s.Equal(11, again.JerseyNumber)

	var profile models.PlayerProfile
	s.Require().NoError(s.db.Where("person_id = ?", s.mine.ID).First(&profile).Error)
	s.Require().NotNil(profile.TeamID)
	s.Equal(team.ID, *profile.TeamID)

	_, err = s.svc.AddRosterEntry(s.ctx, s.coach.ID, team.ID, s.notMine.ID, 1)
	var ve *apperr.ValidationError
	s.True(errors.As(err, &ve), "%v", err)

	_, err = s.svc.AddRosterEntry(s.ctx, s.notMine.ID, team.ID, s.mine.ID, 1)
	var fe *apperr.ForbiddenError
	s.True(errors.As(err, &fe), "%v", err)
}
