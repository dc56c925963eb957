package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind classifies a balance-affecting event.
type Kind string

const (
	// Partner earnings.
	KindOrderCommission Kind = "ORDER_COMMISSION"

	// B2B spendable balance.
	KindWalletTopUp Kind = "WALLET_TOPUP"
	KindWalletDebit Kind = "WALLET_DEBIT"

	// Payout lifecycle. A reservation is the permanent debit once the payout
	// is paid; KindPayoutPaid exists for wire compatibility but the workflow
	// never appends it.
	KindPayoutReserved        Kind = "PAYOUT_RESERVED"
	KindPayoutPaid            Kind = "PAYOUT_PAID"
	KindPayoutRejectedRelease Kind = "PAYOUT_REJECTED_RELEASE"
)

func (k Kind) Valid() bool {
	switch k {
	case KindOrderCommission, KindWalletTopUp, KindWalletDebit,
		KindPayoutReserved, KindPayoutPaid, KindPayoutRejectedRelease:
		return true
	default:
		return false
	}
}

// Credit reports whether entries of this kind carry a positive amount.
func (k Kind) Credit() bool {
	switch k {
	case KindOrderCommission, KindWalletTopUp, KindPayoutRejectedRelease:
		return true
	default:
		return false
	}
}

// WalletKinds is the fold that yields a B2B account's spendable balance.
var WalletKinds = []Kind{KindWalletTopUp, KindWalletDebit}

// WithdrawableKinds is the fold that yields a partner's withdrawable balance:
// commission earned, minus open and paid reservations, plus released ones.
var WithdrawableKinds = []Kind{KindOrderCommission, KindPayoutReserved, KindPayoutRejectedRelease}

// Entry is append-only: never updated, never deleted. Corrections are new
// offsetting entries. The (account, kind, reference) unique index makes
// replayed events no-ops.
type Entry struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID   snowflake.ID `gorm:"not null;index;uniqueIndex:ux_ledger_entries_account_kind_ref,priority:1" json:"account_id"`
	Kind        Kind         `gorm:"type:text;not null;uniqueIndex:ux_ledger_entries_account_kind_ref,priority:2" json:"kind"`
	Amount      int64        `gorm:"not null" json:"amount"`
	ReferenceID string       `gorm:"type:text;not null;uniqueIndex:ux_ledger_entries_account_kind_ref,priority:3" json:"reference_id"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "ledger_entries" }

// Draft is an entry before it has been committed.
type Draft struct {
	AccountID   snowflake.ID
	Kind        Kind
	Amount      int64
	ReferenceID string
}
