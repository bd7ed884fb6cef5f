package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/testutil"
)

func TestInstitutionCreateAndList(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewInstitutionService(db)

	school, err := svc.Create(ctx, InstitutionInput{
		Name:     "Green School",
		Type:     models.AffiliationSchool,
		Location: "Bengaluru",
		Geometry: json.RawMessage(`{"type":"Point","coordinates":[77.59,12.97]}`),
	})
	require.NoError(t, err)
	require.NotNil(t, school.Geometry)
	assert.JSONEq(t, `{"type":"Point","coordinates":[77.59,12.97]}`, string(school.Geometry))

	_, err = svc.Create(ctx, InstitutionInput{Name: "River Club", Type: models.AffiliationCommunity})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Green School", all[0].Name)
	assert.NotNil(t, all[0].Geometry)
	assert.Nil(t, all[1].Geometry)

	clubs, err := svc.List(ctx, models.AffiliationCommunity)
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, "River Club", clubs[0].Name)

	body, err := json.Marshal(all[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"geometry":{"type":"Point"`)
}

func TestInstitutionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewInstitutionService(testutil.SetupTestDB(t))

	bad := []InstitutionInput{
		{Name: "", Type: models.AffiliationSchool},
		{Name: "X", Type: "club"},
		{Name: "X", Type: models.AffiliationSchool, Geometry: json.RawMessage(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)},
		{Name: "X", Type: models.AffiliationSchool, Geometry: json.RawMessage(`{"type":"Point","coordinates":[200,0]}`)},
	}
	for i, in := range bad {
		_, err := svc.Create(ctx, in)
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve), "case %d: %v", i, err)
	}

	_, err := svc.List(ctx, "club")
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	clk := newClock()
	seeder := NewSeeder(db, clk)

	inst, err := seeder.Institution(ctx, "Green School", models.AffiliationSchool, "Bengaluru")
	require.NoError(t, err)
	again, err := seeder.Institution(ctx, "Green School", models.AffiliationSchool, "Elsewhere")
	require.NoError(t, err)
	assert.Equal(t, inst.ID, again.ID)
	assert.Equal(t, "Bengaluru", again.Location)

	admin, err := seeder.Admin(ctx, "admin123", SeedPerson{FirstName: "Admin", Email: "Admin@Hub.test"})
	require.NoError(t, err)
	assert.Equal(t, "admin123", admin.UniqueUserID)
	assert.Equal(t, "admin@hub.test", admin.Email)
	_, err = seeder.Admin(ctx, "admin123", SeedPerson{Email: "admin@hub.test"})
	require.NoError(t, err)

	coach, err := seeder.Coach(ctx, SeedPerson{FirstName: "Kiran", Email: "kiran@hub.test", Password: "coachpass"}, inst.ID)
	require.NoError(t, err)
	clk.Advance(1)
	coachAgain, err := seeder.Coach(ctx, SeedPerson{Email: "kiran@hub.test"}, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, coach.ID, coachAgain.ID)

	var counts struct{ people, profiles, links int64 }
	require.NoError(t, db.Model(&models.Person{}).Count(&counts.people).Error)
	require.NoError(t, db.Model(&models.CoachProfile{}).Count(&counts.profiles).Error)
	require.NoError(t, db.Model(&models.InstitutionCoach{}).Count(&counts.links).Error)
	assert.Equal(t, int64(2), counts.people)
	assert.Equal(t, int64(1), counts.profiles)
	assert.Equal(t, int64(1), counts.links)

	_, err = seeder.Coach(ctx, SeedPerson{Email: "x@hub.test"}, 999)
	var ne *apperr.NotFoundError
	assert.True(t, errors.As(err, &ne))
}
