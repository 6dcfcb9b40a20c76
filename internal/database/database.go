package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salesdesk/daily-report-api/internal/config"
	"github.com/salesdesk/daily-report-api/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	logMode := logger.Warn
	if cfg.Server.Mode == config.ModeDevelopment {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established",
		slog.String("driver", cfg.Database.Driver),
		slog.String("host", cfg.Database.Host),
	)
	return nil
}

// AutoMigrate creates the schema from the models. Production deployments
// use the goose SQL migrations instead; this path serves tests and the
// sqlite in-memory database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Employee{},
		&models.Customer{},
		&models.DailyReport{},
		&models.VisitRecord{},
		&models.Comment{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
