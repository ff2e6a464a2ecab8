package main

import (
	"gorm.io/gorm"

	"github.com/staffdesk/api/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Admin{},
		&models.Employee{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addEmployeeSearchIndexes,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addEmployeeSearchIndexes speeds up the ILIKE search across the four
// searchable columns.
func addEmployeeSearchIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS ix_employee_name_trgm
		 ON employees USING gin (name gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS ix_employee_email_trgm
		 ON employees USING gin (email gin_trgm_ops)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
