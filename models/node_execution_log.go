package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NodeExecutionLog is reserved schema for per-node execution records.
type NodeExecutionLog struct {
	ID         string         `gorm:"type:varchar(36);primaryKey"`
	RunID      string         `gorm:"type:varchar(36);index;not null"`
	NodeID     string         `gorm:"type:varchar(255);not null"`
	NodeType   string         `gorm:"type:varchar(50);not null"`
	Status     string         `gorm:"type:varchar(50);default:pending;not null"`
	Input      datatypes.JSON `gorm:"type:jsonb"`
	Output     datatypes.JSON `gorm:"type:jsonb"`
	Error      string         `gorm:"type:text"`
	Attempt    int            `gorm:"default:1;not null"`
	DurationMS *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l *NodeExecutionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
