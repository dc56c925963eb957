package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role identifies the kind of actor an account holds value for.
type Role string

const (
	RolePartner Role = "PARTNER"
	RoleB2B     Role = "B2B"
)

func (r Role) Valid() bool {
	return r == RolePartner || r == RoleB2B
}

// Account is created once at onboarding and never mutated afterwards. All
// value movement lives in the ledger, keyed by the account id.
type Account struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID `gorm:"not null;uniqueIndex:ux_accounts_owner_role,priority:1" json:"owner_id"`
	Role      Role         `gorm:"type:text;not null;uniqueIndex:ux_accounts_owner_role,priority:2" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }
