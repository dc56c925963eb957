package domain

import (
	"context"
	"errors"

	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type TopUpRequest struct {
	AccountID snowflake.ID
	Amount    int64
	// ReferenceID is the gateway's idempotency key; a retried top-up with the
	// same key replays the original credit.
	ReferenceID   string
	PaymentMethod string
}

type DebitRequest struct {
	AccountID   snowflake.ID
	Amount      int64
	ReferenceID string
}

type MutationResult struct {
	Entry   *ledgerdomain.Entry `json:"entry"`
	Balance int64               `json:"balance"`
	// Replayed is true when the reference was already applied and the
	// original entry is returned.
	Replayed bool `json:"replayed"`
}

type TransactionsRequest struct {
	AccountID snowflake.ID
	Page      pagination.Pagination
}

// Service is the B2B spendable-balance surface. Amounts are positive minor
// units; the ledger records debits as negative entries.
type Service interface {
	TopUp(ctx context.Context, req TopUpRequest) (*MutationResult, error)
	// Debit fails with the ledger's insufficient-balance error rather than
	// letting the wallet fold go negative.
	Debit(ctx context.Context, req DebitRequest) (*MutationResult, error)
	Balance(ctx context.Context, accountID snowflake.ID) (int64, error)
	Transactions(ctx context.Context, req TransactionsRequest) (ledgerdomain.ListEntriesResponse, error)
}

var (
	ErrInvalidAmount    = errors.New("invalid_wallet_amount")
	ErrInvalidReference = errors.New("invalid_wallet_reference")
)
