package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Method string

const (
	MethodUPI  Method = "UPI"
	MethodBank Method = "BANK"
)

func (m Method) Valid() bool {
	return m == MethodUPI || m == MethodBank
}

// Status moves PENDING -> PAID or PENDING -> REJECTED, exactly once. The
// transition is guarded by a conditional update on the current status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusRejected Status = "REJECTED"
)

// Payout is a partner withdrawal request. The money side lives in the ledger:
// a reservation debit at request time, and a release credit on rejection. A
// paid payout keeps its reservation as the permanent debit.
type Payout struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	PartnerID   snowflake.ID `gorm:"not null;index" json:"partner_id"`
	Amount      int64        `gorm:"not null" json:"amount"`
	Method      Method       `gorm:"type:text;not null" json:"method"`
	Destination string       `gorm:"type:text;not null" json:"destination"`
	Status      Status       `gorm:"type:text;not null;index" json:"status"`
	Note        string       `gorm:"type:text" json:"note,omitempty"`
	RequestedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"requested_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}

// TableName sets the database table name.
func (Payout) TableName() string { return "payout_requests" }
