package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/models"
)

type TeamInput struct {
	TeamName     string              `json:"teamName"`
	TotalMembers int                 `json:"totalMembers"`
	Players      []models.TeamPlayer `json:"players"`
	TournamentID *uint               `json:"tournamentId"`
	ContactPhone string              `json:"contactPhone"`
	ContactEmail string              `json:"contactEmail"`
	Notes        string              `json:"notes"`
}

// TeamStanding is a team with its record and player names.
type TeamStanding struct {
	ID       uint     `json:"id"`
	TeamName string   `json:"teamName"`
	Players  []string `json:"players"`
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
}

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// Create registers a team for a coach. Every listed player must be one of the coach's.
func (s *TeamService) Create(ctx context.Context, coachID uint, in TeamInput) (*models.Team, error) {
	in.TeamName = strings.TrimSpace(in.TeamName)
	if in.TeamName == "" || in.TotalMembers <= 0 || len(in.Players) == 0 {
		return nil, apperr.Validation("Team name, total members and at least one player are required")
	}

	db := s.db.WithContext(ctx)
	var coach models.Person
	err := db.Preload("Roles").First(&coach, coachID).Error
	if apperr.IsNotFound(err) || (err == nil && !coach.HasRole(models.RoleCoach)) {
		return nil, apperr.NotFound("Coach not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load coach: %w", err)
	}

	var listed []uint
	for _, p := range in.Players {
		listed = append(listed, p.PlayerID)
	}
	if err := s.checkAssigned(db, coachID, dedupe(listed)); err != nil {
		return nil, err
	}

	if in.TournamentID != nil && *in.TournamentID != 0 {
		var count int64
		if err := db.Model(&models.Tournament{}).Where("id = ?", *in.TournamentID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check tournament: %w", err)
		}
		if count == 0 {
			return nil, apperr.NotFound("Tournament not found")
		}
	} else {
		in.TournamentID = nil
	}

	team := models.Team{
		TeamName:     in.TeamName,
		TotalMembers: in.TotalMembers,
		Players:      in.Players,
		TournamentID: in.TournamentID,
		CoachID:      coachID,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Notes:        in.Notes,
	}
	if err := db.Create(&team).Error; err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	logrus.WithFields(logrus.Fields{"team_id": team.ID, "coach_id": coachID}).Info("Team created.")
	return &team, nil
}

func (s *TeamService) checkAssigned(db *gorm.DB, coachID uint, playerIDs []uint) error {
	if len(playerIDs) == 0 {
		return nil
	}
	var assigned int64
	if err := db.Model(&models.PlayerProfile{}).
		Where("assigned_coach_id = ? AND person_id IN ?", coachID, playerIDs).
		Count(&assigned).Error; err != nil {
		return fmt.Errorf("check players: %w", err)
	}
	if int(assigned) != len(playerIDs) {
		return apperr.Validation("Some selected players are not assigned to you. Please select only your assigned players.")
	}
	return nil
}

// Mine lists a coach's teams, newest first.
func (s *TeamService) Mine(ctx context.Context, coachID uint) ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.WithContext(ctx).Where("coach_id = ?", coachID).
		Order("created_at DESC").Order("id DESC").
		Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// All returns every team sorted by name with wins and losses from completed matches.
func (s *TeamService) All(ctx context.Context) ([]TeamStanding, error) {
	db := s.db.WithContext(ctx)

	var teams []models.Team
	if err := db.Order("team_name").Order("id").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return []TeamStanding{}, nil
	}
	teamIDs := make([]uint, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	var matches []models.Match
	if err := db.Where("status = ? AND winner_team_id IS NOT NULL", models.MatchCompleted).
		Where("team_a_id IN ? OR team_b_id IN ?", teamIDs, teamIDs).
		Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	wins := make(map[uint]int)
	losses := make(map[uint]int)
	for _, m := range matches {
		winner := *m.WinnerTeamID
		wins[winner]++
		switch winner {
		case m.TeamAID:
			losses[m.TeamBID]++
		case m.TeamBID:
			losses[m.TeamAID]++
		}
	}

	var roster []models.TeamRoster
	if err := db.Preload("Player").
		Where("team_id IN ? AND status = ?", teamIDs, models.RosterActive).
		Order("id").Find(&roster).Error; err != nil {
		return nil, fmt.Errorf("load rosters: %w", err)
	}
	names := make(map[uint][]string)
	for _, r := range roster {
		if r.Player != nil {
			names[r.TeamID] = append(names[r.TeamID], r.Player.FullName())
		}
	}

	out := make([]TeamStanding, 0, len(teams))
	for _, t := range teams {
		players := names[t.ID]
		for _, p := range t.Players {
			if p.Name != "" {
				players = append(players, p.Name)
			}
		}
		out = append(out, TeamStanding{
			ID:       t.ID,
			TeamName: t.TeamName,
			Players:  uniqueStrings(players),
			Wins:     wins[t.ID],
			Losses:   losses[t.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out, nil
}

// AddRosterEntry puts one of the coach's players on one of the coach's teams.
func (s *TeamService) AddRosterEntry(ctx context.Context, coachID, teamID, playerID uint, jersey int) (*models.TeamRoster, error) {
	if playerID == 0 {
		return nil, apperr.Validation("Player ID is required")
	}
	db := s.db.WithContext(ctx)

	var team models.Team
	err := db.First(&team, teamID).Error
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Team not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load team: %w", err)
	}
	if team.CoachID != coachID {
		return nil, apperr.Forbidden("You can only manage your own teams")
	}
	if err := s.checkAssigned(db, coachID, []uint{playerID}); err != nil {
		return nil, err
	}

	entry := models.TeamRoster{TeamID: teamID, PlayerID: playerID}
	if err := db.Where(models.TeamRoster{TeamID: teamID, PlayerID: playerID}).
		Attrs(models.TeamRoster{JerseyNumber: jersey, Status: models.RosterActive}).
		FirstOrCreate(&entry).Error; err != nil {
		return nil, fmt.Errorf("add roster entry: %w", err)
	}
	if err := db.Model(&models.PlayerProfile{}).Where("person_id = ?", playerID).
		Update("team_id", teamID).Error; err != nil {
		logrus.WithError(err).WithField("player_id", playerID).Warn("Could not set player team.")
	}
	return &entry, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
