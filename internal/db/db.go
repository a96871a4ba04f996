package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
	"github.com/yungbote/retirepath-backend/internal/utils"
)

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

// NewService opens Postgres by default; DB_DRIVER=sqlite switches to a local
// file database for development.
func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "retirepath.db", log)
		serviceLog.Info("Connecting to SQLite...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "retirepath", log)

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("Connecting to Postgres...")
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
			return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
		}
	}

	return &Service{db: db, driver: driver, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Assessment{},
		&types.Roadmap{},
		&types.Entitlement{},
		&types.TaskCheck{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }
