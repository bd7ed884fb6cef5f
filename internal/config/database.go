package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"yultimate_hub/internal/models"
)

// OpenDB connects to the configured database. Duplicate-key errors are
// translated to gorm.ErrDuplicatedKey for both drivers.
func OpenDB(cfg DBConfig, log gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table. Many2many fields are bound to
// their explicit join models first so the join rows can be written directly.
func Migrate(db *gorm.DB) error {
	joins := []struct {
		owner any
		field string
		join  any
	}{
		{&models.Institution{}, "Coaches", &models.InstitutionCoach{}},
		{&models.Session{}, "AssignedCoaches", &models.SessionCoach{}},
		{&models.Session{}, "EnrolledPlayers", &models.SessionPlayer{}},
	}
	for _, j := range joins {
		if err := db.SetupJoinTable(j.owner, j.field, j.join); err != nil {
			return fmt.Errorf("join table %s: %w", j.field, err)
		}
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
