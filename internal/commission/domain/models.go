package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status is display-only: money truth lives in the ledger entry. Records are
// recomputed from ledger state, never hand-edited.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusPaid     Status = "PAID"
	StatusRejected Status = "REJECTED"
)

// OrderEvent is the completed-order input delivered by the checkout
// subsystem. Delivery may repeat; commissioning is idempotent on OrderID.
type OrderEvent struct {
	OrderID     string       `json:"order_id"`
	UserID      snowflake.ID `json:"user_id"`
	OrderType   string       `json:"order_type"`
	OrderAmount int64        `json:"order_amount"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

// Record is the admin/partner display view of an ORDER_COMMISSION entry.
type Record struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	EntryID          snowflake.ID      `gorm:"not null;index" json:"entry_id"`
	PartnerID        snowflake.ID      `gorm:"not null;index" json:"partner_id"`
	UserID           snowflake.ID      `gorm:"not null;index" json:"user_id"`
	OrderID          string            `gorm:"type:text;not null;uniqueIndex" json:"order_id"`
	OrderType        string            `gorm:"type:text;not null;index" json:"order_type"`
	OrderAmount      int64             `gorm:"not null" json:"order_amount"`
	CommissionAmount int64             `gorm:"not null" json:"commission_amount"`
	RateBps          int64             `gorm:"not null" json:"rate_bps"`
	Multiplier       float64           `gorm:"not null;default:1" json:"multiplier"`
	Status           Status            `gorm:"type:text;not null;index" json:"status"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "commission_records" }
