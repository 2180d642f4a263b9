package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Concurrency behavior for workflow runs. Declared for the execution engine;
// nothing in this service enforces it.
const (
	ConcurrencyAllowParallel  = "allow_parallel"
	ConcurrencyQueue          = "queue"
	ConcurrencyCancelExisting = "cancel_existing"
)

// Workflow is an owned automation definition. The graph payload is an opaque
// nodes/edges document; the storage layer imposes no schema on it.
type Workflow struct {
	ID                string         `gorm:"type:varchar(36);primaryKey"`
	OwnerID           string         `gorm:"type:varchar(36);index;not null"`
	Name              string         `gorm:"type:varchar(255);not null"`
	Description       string         `gorm:"type:text"`
	GraphData         datatypes.JSON `gorm:"type:jsonb"`
	IsActive          bool           `gorm:"default:true;not null"`
	ConcurrencyPolicy string         `gorm:"type:varchar(50);default:allow_parallel;not null"`
	Version           int            `gorm:"default:1;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Runs []WorkflowRun `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE"`
}

func (w *Workflow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
