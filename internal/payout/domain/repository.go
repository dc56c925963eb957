package domain

import (
	"context"
	"time"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	PartnerID snowflake.ID
	Status    Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payout *Payout) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payout, error)

	// UpdateStatusIf flips the payout from one status to another in a single
	// conditional update. It reports false when the row was not in the
	// expected status, which is how concurrent resolutions lose the race.
	UpdateStatusIf(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status, resolvedAt time.Time, note string) (bool, error)

	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Payout, int64, error)

	// SumAmount totals payout amounts for the partner in the given status.
	SumAmount(ctx context.Context, db *gorm.DB, partnerID snowflake.ID, status Status) (int64, error)
}
