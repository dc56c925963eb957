package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status mirrors the admin console's campaign states. Scheduling and CRUD
// belong to the campaign subsystem; this core only reads active windows.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusScheduled Status = "SCHEDULED"
)

// Campaign is a time-bounded multiplier on commission for qualifying orders.
type Campaign struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	StartDate  time.Time    `gorm:"not null;index" json:"start_date"`
	EndDate    time.Time    `gorm:"not null;index" json:"end_date"`
	Multiplier float64      `gorm:"not null;default:1" json:"multiplier"`
	Status     Status       `gorm:"type:text;not null;index" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Campaign) TableName() string { return "campaigns" }
