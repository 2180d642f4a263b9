package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkflowRun is reserved schema for the execution engine. No service in this
// codebase creates or transitions runs.
type WorkflowRun struct {
	ID               string         `gorm:"type:varchar(36);primaryKey"`
	WorkflowID       string         `gorm:"type:varchar(36);index;not null"`
	WorkflowVersion  int            `gorm:"not null"`
	Status           string         `gorm:"type:varchar(50);default:pending;index;not null"`
	TriggerType      string         `gorm:"type:varchar(50);not null"`
	TriggerInput     datatypes.JSON `gorm:"type:jsonb"`
	ExecutionContext datatypes.JSON `gorm:"type:jsonb"`
	StartedAt        *time.Time
	CompletedAt      *time.Time
	WorkflowDeleted  bool           `gorm:"default:false;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	NodeLogs []NodeExecutionLog `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (r *WorkflowRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
