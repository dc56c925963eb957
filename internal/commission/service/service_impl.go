package service

import (
	"context"
	"math"

	campaigndomain "github.com/aurumly/treasury/internal/campaign/domain"
	"github.com/aurumly/treasury/internal/clock"
	"github.com/aurumly/treasury/internal/commission/domain"
	"github.com/aurumly/treasury/internal/config"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/metrics"
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type commissionService struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	cfg       config.Config
	clock     clock.Clock
	repo      domain.Repository
	ledger    ledgerdomain.Service
	campaigns campaigndomain.Service
	resolver  domain.PartnerResolver
	metrics   *metrics.Metrics
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Cfg       config.Config
	Clock     clock.Clock
	Repo      domain.Repository
	Ledger    ledgerdomain.Service
	Campaigns campaigndomain.Service
	Resolver  domain.PartnerResolver
	Metrics   *metrics.Metrics `optional:"true"`
}

func New(p Params) domain.Service {
	return &commissionService{
		db:        p.DB,
		log:       p.Log.Named("commission.service"),
		genID:     p.GenID,
		cfg:       p.Cfg,
		clock:     p.Clock,
		repo:      p.Repo,
		ledger:    p.Ledger,
		campaigns: p.Campaigns,
		resolver:  p.Resolver,
		metrics:   p.Metrics,
	}
}

func (s *commissionService) RecordOrderCommission(ctx context.Context, event domain.OrderEvent) (*domain.Record, error) {
	if event.OrderID == "" {
		return nil, domain.ErrInvalidOrder
	}
	if event.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if event.OrderAmount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.clock.Now()
	}

	partnerID, err := s.resolver.PartnerFor(ctx, event.UserID)
	if err != nil {
		return nil, err
	}
	if partnerID == 0 {
		s.log.Info("order without attributed partner, skipping commission",
			zap.String("order_id", event.OrderID),
			zap.Int64("user_id", int64(event.UserID)),
		)
		return nil, domain.ErrUnattributedOrder
	}

	rateBps := s.cfg.RateBpsFor(event.OrderType)
	multiplier, active, err := s.campaigns.MultiplierOn(ctx, occurredAt)
	if err != nil {
		return nil, err
	}

	amount := commissionAmount(event.OrderAmount, rateBps, multiplier)
	if amount <= 0 {
		existing, err := s.repo.FindByOrderID(ctx, s.db, event.OrderID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		s.log.Info("commission rounds to zero, skipping",
			zap.String("order_id", event.OrderID),
			zap.Int64("order_amount", event.OrderAmount),
			zap.Int64("rate_bps", rateBps),
		)
		return nil, domain.ErrZeroCommission
	}

	entry, created, err := s.ledger.Append(ctx, ledgerdomain.Draft{
		AccountID:   partnerID,
		Kind:        ledgerdomain.KindOrderCommission,
		Amount:      amount,
		ReferenceID: event.OrderID,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := s.repo.FindByOrderID(ctx, s.db, event.OrderID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		// The entry committed but the record write was lost mid-crash;
		// rebuild the record from the entry below.
	}

	record := &domain.Record{
		ID:               s.genID.Generate(),
		EntryID:          entry.ID,
		PartnerID:        partnerID,
		UserID:           event.UserID,
		OrderID:          event.OrderID,
		OrderType:        event.OrderType,
		OrderAmount:      event.OrderAmount,
		CommissionAmount: entry.Amount,
		RateBps:          rateBps,
		Multiplier:       multiplier,
		Status:           domain.StatusApproved,
		Metadata:         datatypes.JSONMap{"occurred_at": occurredAt},
		CreatedAt:        s.clock.Now(),
	}
	if active != nil {
		record.Metadata["campaign_id"] = active.ID.String()
		record.Metadata["campaign_name"] = active.Name
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	if created {
		s.metrics.RecordCommissionOrder()
		s.log.Info("commission recorded",
			zap.String("order_id", event.OrderID),
			zap.Int64("partner_id", int64(partnerID)),
			zap.Int64("amount", amount),
			zap.Float64("multiplier", multiplier),
		)
	}
	return record, nil
}

// commissionAmount applies the basis-point rate and campaign multiplier,
// rounding half away from zero to the nearest minor unit.
func commissionAmount(orderAmount, rateBps int64, multiplier float64) int64 {
	return int64(math.Round(float64(orderAmount) * float64(rateBps) / 10000 * multiplier))
}

func (s *commissionService) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	records, total, err := s.repo.List(ctx, s.db, domain.ListFilter{
		PartnerID: req.PartnerID,
		OrderType: req.OrderType,
	}, req.Page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	resp := domain.ListResponse{
		PageInfo: pagination.BuildPageInfo(req.Page, total),
		Records:  make([]domain.Record, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, *r)
	}
	return resp, nil
}
