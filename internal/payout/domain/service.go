package domain

import (
	"context"
	"errors"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type RequestPayout struct {
	PartnerID   snowflake.ID
	Amount      int64
	Method      Method
	Destination string
}

type ResolvePayout struct {
	PayoutID snowflake.ID
	Decision Status
	Note     string
}

type HistoryRequest struct {
	PartnerID snowflake.ID
	Status    Status
	Page      pagination.Pagination
}

type ListRequest struct {
	Status Status
	Page   pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Payouts []Payout `json:"payouts"`
}

type Service interface {
	// Request reserves the amount against the partner's withdrawable balance
	// and records a PENDING payout, atomically. Partners may hold several
	// pending payouts at once; each carries its own reservation.
	Request(ctx context.Context, req RequestPayout) (*Payout, error)

	// Resolve marks a pending payout PAID or REJECTED. Rejection releases the
	// reservation back to the withdrawable balance. Resolving a payout twice
	// fails with ErrAlreadyResolved regardless of the decision.
	Resolve(ctx context.Context, req ResolvePayout) (*Payout, error)

	History(ctx context.Context, req HistoryRequest) (ListResponse, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrBelowMinimum       = errors.New("payout_below_minimum")
	ErrInvalidMethod      = errors.New("invalid_payout_method")
	ErrInvalidDestination = errors.New("invalid_payout_destination")
	ErrInvalidTransition  = errors.New("invalid_transition")
	ErrNotFound           = errors.New("payout_not_found")
	ErrAlreadyResolved    = errors.New("payout_already_resolved")
)
