package domain

import (
	"context"

	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *Entry) error
	FindByReference(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind Kind, referenceID string) (*Entry, error)
	SumByKinds(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kinds []Kind) (int64, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kinds []Kind, page pagination.Pagination) ([]*Entry, int64, error)
}
