package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/models"
)

// Seeder creates bootstrap records. Every method is safe to run twice.
type Seeder struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewSeeder(db *gorm.DB, clk clock.Clock) *Seeder {
	return &Seeder{db: db, clock: clk}
}

type SeedPerson struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Admin ensures an admin account whose login code is code.
func (s *Seeder) Admin(ctx context.Context, code string, p SeedPerson) (*models.Person, error) {
	if code == "" {
		return nil, apperr.Validation("admin code is required")
	}
	return s.person(ctx, models.RoleAdmin, code, p)
}

// Coach ensures a coach account with a coach profile, optionally linked to an institution.
func (s *Seeder) Coach(ctx context.Context, p SeedPerson, institutionID uint) (*models.Person, error) {
	db := s.db.WithContext(ctx)
	var aff models.Affiliation
	if institutionID != 0 {
		var inst models.Institution
		if err := db.First(&inst, institutionID).Error; err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.NotFound("Institution %d not found", institutionID)
			}
			return nil, fmt.Errorf("load institution: %w", err)
		}
		aff = models.Affiliation{Type: inst.Type, InstitutionID: inst.ID, Name: inst.Name, Location: inst.Location}
	}

	coach, err := s.person(ctx, models.RoleCoach, GenerateUniqueCode(models.RoleCoach, s.clock.Now()), p)
	if err != nil {
		return nil, err
	}
	profile := models.CoachProfile{PersonID: coach.ID, Certifications: []string{}, Affiliation: aff}
	if err := db.Where(models.CoachProfile{PersonID: coach.ID}).FirstOrCreate(&profile).Error; err != nil {
		return nil, fmt.Errorf("coach profile: %w", err)
	}
	if aff.IsSet() {
		link := models.InstitutionCoach{InstitutionID: aff.InstitutionID, PersonID: coach.ID}
		if err := db.Where(&link).FirstOrCreate(&link).Error; err != nil {
			return nil, fmt.Errorf("link coach: %w", err)
		}
	}
	return coach, nil
}

// Institution ensures an institution with the given name and type exists.
func (s *Seeder) Institution(ctx context.Context, name, typ, location string) (*models.Institution, error) {
	if !validInstitutionType(typ) {
		return nil, apperr.Validation("type must be school or community")
	}
	inst := models.Institution{Name: name, Type: typ, Location: location}
	if err := s.db.WithContext(ctx).
		Where(models.Institution{Name: name, Type: typ}).
		Attrs(models.Institution{Location: location}).
		FirstOrCreate(&inst).Error; err != nil {
		return nil, fmt.Errorf("seed institution: %w", err)
	}
	return &inst, nil
}

func (s *Seeder) person(ctx context.Context, role, code string, p SeedPerson) (*models.Person, error) {
	db := s.db.WithContext(ctx)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Email == "" {
		return nil, apperr.Validation("email is required")
	}

	var person models.Person
	err := db.Preload("Roles").Where("email = ?", p.Email).First(&person).Error
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("load person: %w", err)
	}
	if err == nil {
		if !person.HasRole(role) {
			r := models.PersonRole{PersonID: person.ID, Role: role}
			if err := db.Create(&r).Error; err != nil {
				return nil, fmt.Errorf("add role: %w", err)
			}
			person.Roles = append(person.Roles, r)
		}
		logrus.WithFields(logrus.Fields{"person_id": person.ID, "role": role}).Info("Seed account already present.")
		return &person, nil
	}

	var hash []byte
	if p.Password != "" {
		if hash, err = bcrypt.GenerateFromPassword([]byte(p.Password), passwordCost); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	now := s.clock.Now()
	person = models.Person{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		UniqueUserID:  code,
		PasswordHash:  string(hash),
		Roles:         []models.PersonRole{{Role: role}},
		AccountStatus: models.AccountActive,
		ApprovedAt:    &now,
	}
	if err := db.Create(&person).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", role, err)
	}
	logrus.WithFields(logrus.Fields{"person_id": person.ID, "role": role, "code": code}).Info("Seed account created.")
	return &person, nil
}
