package service

import (
	"context"
	"time"

	"github.com/aurumly/treasury/internal/campaign/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("campaign.service"),
		repo: p.Repo,
	}
}

// MultiplierOn picks the highest multiplier among overlapping active
// campaigns; multipliers do not stack.
func (s *Service) MultiplierOn(ctx context.Context, t time.Time) (float64, *domain.Campaign, error) {
	campaigns, err := s.repo.FindActiveOn(ctx, s.db, t)
	if err != nil {
		return 0, nil, err
	}
	if len(campaigns) == 0 {
		return 1, nil, nil
	}

	best := campaigns[0]
	if best.Multiplier <= 0 {
		return 1, nil, nil
	}
	return best.Multiplier, best, nil
}
