package migrations

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"synthflow/models"
)

// RunMigrations executes all schema migrations. WorkflowRun and
// NodeExecutionLog are migrated even though no service writes them yet; the
// execution engine will.
func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running migrations...")

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate User: %w", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		return fmt.Errorf("failed to migrate RefreshToken: %w", err)
	}
	if err := db.AutoMigrate(&models.Workflow{}); err != nil {
		return fmt.Errorf("failed to migrate Workflow: %w", err)
	}
	if err := db.AutoMigrate(&models.WorkflowRun{}); err != nil {
		return fmt.Errorf("failed to migrate WorkflowRun: %w", err)
	}
	if err := db.AutoMigrate(&models.NodeExecutionLog{}); err != nil {
		return fmt.Errorf("failed to migrate NodeExecutionLog: %w", err)
	}

	logrus.Info("Migrations completed successfully")
	return nil
}
