package domain

import (
	"context"
	"errors"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListEntriesRequest struct {
	AccountID snowflake.ID
	Kinds     []Kind
	Page      pagination.Pagination
}

type ListEntriesResponse struct {
	pagination.PageInfo
	Entries []Entry `json:"entries"`
}

// Service is the single write path to balances. Append is atomic with the
// invariant check: a committed entry can never have driven the wallet or
// withdrawable fold negative.
type Service interface {
	// Append commits the draft, serialized per account. The bool result is
	// false when the (account, kind, reference) was already committed and the
	// prior entry is returned unchanged; a replayed or retried event is not
	// an error.
	Append(ctx context.Context, draft Draft) (*Entry, bool, error)

	// AppendTx is Append inside the caller's transaction. The caller must
	// already hold the account's lock.
	AppendTx(ctx context.Context, tx *gorm.DB, draft Draft) (*Entry, bool, error)

	// BalanceAsOf folds the given kinds for the account. It observes every
	// locally committed append.
	BalanceAsOf(ctx context.Context, accountID snowflake.ID, kinds ...Kind) (int64, error)

	List(ctx context.Context, req ListEntriesRequest) (ListEntriesResponse, error)
}

var (
	ErrInvalidAccount           = errors.New("invalid_account")
	ErrInvalidKind              = errors.New("invalid_kind")
	ErrInvalidAmount            = errors.New("invalid_amount")
	ErrInvalidReference         = errors.New("invalid_reference")
	ErrInsufficientBalance      = errors.New("insufficient_balance")
	ErrInsufficientWithdrawable = errors.New("insufficient_withdrawable")
)
