package repository

import (
	"context"
	"errors"

	"github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.Entry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind domain.Kind, referenceID string) (*domain.Entry, error) {
	var entry domain.Entry
	err := db.WithContext(ctx).
		Where("account_id = ? AND kind = ? AND reference_id = ?", accountID, kind, referenceID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repo) SumByKinds(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kinds []domain.Kind) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND kind IN ?", accountID, kinds).
		Scan(&total).Error
	return total, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kinds []domain.Kind, page pagination.Pagination) ([]*domain.Entry, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Where("account_id = ?", accountID)
	if len(kinds) > 0 {
		stmt = stmt.Where("kind IN ?", kinds)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*domain.Entry
	err := page.Apply(stmt).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
