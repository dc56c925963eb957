package repository

import (
	"context"
	"time"

	"github.com/aurumly/treasury/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindActiveOn(ctx context.Context, db *gorm.DB, t time.Time) ([]*domain.Campaign, error) {
	var campaigns []*domain.Campaign
	err := db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", domain.StatusActive, t, t).
		Order("multiplier DESC, start_date ASC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}
