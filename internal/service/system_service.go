package service

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/ndewijer/Investment-Admin-Console/internal/database"
	"github.com/ndewijer/Investment-Admin-Console/internal/model"
	"github.com/ndewijer/Investment-Admin-Console/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	info := model.VersionInfo{AppVersion: version.Version}

	dbVersion, err := goose.GetDBVersionContext(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	info.DbVersion = dbVersion
	return info, nil
}
