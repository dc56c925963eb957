package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Summary is the partner dashboard view, derived entirely from the ledger and
// the payout table. TotalEarnings always equals Withdrawable plus
// AlreadyRequested plus TotalPaid.
type Summary struct {
	Withdrawable     int64 `json:"withdrawalBalance"`
	AlreadyRequested int64 `json:"alreadyRequested"`
	TotalPaid        int64 `json:"totalPaid"`
	TotalEarnings    int64 `json:"totalEarnings"`
}

type Service interface {
	Withdrawable(ctx context.Context, partnerID snowflake.ID) (int64, error)
	Earnings(ctx context.Context, partnerID snowflake.ID) (Summary, error)
}
