package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Goal{},
		&models.Commission{},
		&models.AuditLog{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		// Check constraints mirror the request validation rules.
		statements := []string{
			`DO $$ BEGIN
				ALTER TABLE users ADD CONSTRAINT users_commission_rate_range CHECK (commission_rate IS NULL OR (commission_rate >= 0 AND commission_rate <= 100));
			EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
			`DO $$ BEGIN
				ALTER TABLE goals ADD CONSTRAINT goals_period_order CHECK (period_end > period_start);
			EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
			`DO $$ BEGIN
				ALTER TABLE commissions ADD CONSTRAINT commissions_amount_positive CHECK (amount > 0);
			EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		}
		for _, stmt := range statements {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to apply constraint: %w", err)
			}
		}
	}

	return nil
}
