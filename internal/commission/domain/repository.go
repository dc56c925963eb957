package domain

import (
	"context"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	PartnerID snowflake.ID
	OrderType string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*Record, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Record, int64, error)
}
