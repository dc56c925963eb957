package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// FindActiveOn returns active campaigns whose window covers t, highest
	// multiplier first.
	FindActiveOn(ctx context.Context, db *gorm.DB, t time.Time) ([]*Campaign, error)
}
