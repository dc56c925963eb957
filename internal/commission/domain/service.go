package domain

import (
	"context"
	"errors"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

// PartnerResolver looks up the partner attributed to a user's orders.
// Attribution rules (referral code vs. manual assignment) belong to the
// referral subsystem; a zero id means no partner is attributed.
type PartnerResolver interface {
	PartnerFor(ctx context.Context, userID snowflake.ID) (snowflake.ID, error)
}

type ListRequest struct {
	PartnerID snowflake.ID
	OrderType string
	Page      pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Records []Record `json:"records"`
}

type Service interface {
	// RecordOrderCommission appends the commission entry for a completed
	// order and writes the display record. Redelivered events return the
	// original record. Orders with no attributed partner return
	// ErrUnattributedOrder, and orders whose commission rounds to zero
	// return ErrZeroCommission; neither leaves a trace in the ledger.
	RecordOrderCommission(ctx context.Context, event OrderEvent) (*Record, error)

	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrInvalidUser       = errors.New("invalid_user")
	ErrInvalidAmount     = errors.New("invalid_order_amount")
	ErrUnattributedOrder = errors.New("unattributed_order")
	ErrZeroCommission    = errors.New("zero_commission")
)
