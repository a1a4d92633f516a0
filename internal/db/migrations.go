package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/busfleet/internal/model"
)

// Tables in dependency order.
var migrationModels = []interface{}{
	&model.Route{},
	&model.Bus{},
	&model.Driver{},
	&model.Conductor{},
	&model.Shift{},
	&model.Complaint{},
	&model.AccidentReport{},
	&model.Admin{},
	&model.User{},
}

var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_shifts_date_bus ON shifts (shift_date, bus_id);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_date_status ON complaints (complaint_date, status);`,
	`CREATE INDEX IF NOT EXISTS idx_accident_reports_date ON accident_reports (accident_date);`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(migrationModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return runMigrations(db)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
