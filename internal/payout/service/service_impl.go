package service

import (
	"context"
	"strings"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	"github.com/aurumly/treasury/internal/clock"
	"github.com/aurumly/treasury/internal/config"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/lock"
	"github.com/aurumly/treasury/internal/metrics"
	"github.com/aurumly/treasury/internal/payout/domain"
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type payoutService struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	cfg      config.Config
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Service
	ledger   ledgerdomain.Service
	locks    lock.Manager
	metrics  *metrics.Metrics
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Cfg      config.Config
	Clock    clock.Clock
	Repo     domain.Repository
	Accounts accountdomain.Service
	Ledger   ledgerdomain.Service
	Locks    lock.Manager
	Metrics  *metrics.Metrics `optional:"true"`
}

func New(p Params) domain.Service {
	return &payoutService{
		db:       p.DB,
		log:      p.Log.Named("payout.service"),
		genID:    p.GenID,
		cfg:      p.Cfg,
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
		ledger:   p.Ledger,
		locks:    p.Locks,
		metrics:  p.Metrics,
	}
}

func (s *payoutService) Request(ctx context.Context, req domain.RequestPayout) (*domain.Payout, error) {
	if req.Amount < s.cfg.PayoutMinAmount {
		return nil, domain.ErrBelowMinimum
	}
	if !req.Method.Valid() {
		return nil, domain.ErrInvalidMethod
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, domain.ErrInvalidDestination
	}
	if _, err := s.accounts.Get(ctx, req.PartnerID, accountdomain.RolePartner); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, req.PartnerID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	payout := &domain.Payout{
		ID:          s.genID.Generate(),
		PartnerID:   req.PartnerID,
		Amount:      req.Amount,
		Method:      req.Method,
		Destination: req.Destination,
		Status:      domain.StatusPending,
		RequestedAt: s.clock.Now(),
	}

	// The PENDING row and its reservation commit or roll back together, so
	// a payout can never exist without the matching ledger debit.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, payout); err != nil {
			return err
		}
		_, _, err := s.ledger.AppendTx(ctx, tx, ledgerdomain.Draft{
			AccountID:   req.PartnerID,
			Kind:        ledgerdomain.KindPayoutReserved,
			Amount:      -req.Amount,
			ReferenceID: payout.ID.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayoutRequest()
	s.log.Info("payout requested",
		zap.Int64("payout_id", int64(payout.ID)),
		zap.Int64("partner_id", int64(req.PartnerID)),
		zap.Int64("amount", req.Amount),
		zap.String("method", string(req.Method)),
	)
	return payout, nil
}

func (s *payoutService) Resolve(ctx context.Context, req domain.ResolvePayout) (*domain.Payout, error) {
	if req.Decision != domain.StatusPaid && req.Decision != domain.StatusRejected {
		return nil, domain.ErrInvalidTransition
	}

	payout, err := s.repo.FindByID(ctx, s.db, req.PayoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, domain.ErrNotFound
	}

	release, err := s.locks.Acquire(ctx, payout.PartnerID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	resolvedAt := s.clock.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		flipped, err := s.repo.UpdateStatusIf(ctx, tx, payout.ID, domain.StatusPending, req.Decision, resolvedAt, req.Note)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrAlreadyResolved
		}
		// Payment keeps the reservation as the permanent debit; only a
		// rejection moves money, releasing the reserved amount.
		if req.Decision == domain.StatusRejected {
			_, _, err := s.ledger.AppendTx(ctx, tx, ledgerdomain.Draft{
				AccountID:   payout.PartnerID,
				Kind:        ledgerdomain.KindPayoutRejectedRelease,
				Amount:      payout.Amount,
				ReferenceID: payout.ID.String(),
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payout.Status = req.Decision
	payout.ResolvedAt = &resolvedAt
	payout.Note = req.Note

	s.metrics.RecordPayoutResolution(string(req.Decision))
	s.log.Info("payout resolved",
		zap.Int64("payout_id", int64(payout.ID)),
		zap.Int64("partner_id", int64(payout.PartnerID)),
		zap.String("decision", string(req.Decision)),
	)
	return payout, nil
}

func (s *payoutService) History(ctx context.Context, req domain.HistoryRequest) (domain.ListResponse, error) {
	if _, err := s.accounts.Get(ctx, req.PartnerID, accountdomain.RolePartner); err != nil {
		return domain.ListResponse{}, err
	}
	return s.list(ctx, domain.ListFilter{PartnerID: req.PartnerID, Status: req.Status}, req.Page)
}

func (s *payoutService) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	return s.list(ctx, domain.ListFilter{Status: req.Status}, req.Page)
}

func (s *payoutService) list(ctx context.Context, filter domain.ListFilter, page pagination.Pagination) (domain.ListResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	payouts := make([]domain.Payout, 0, len(items))
	for _, item := range items {
		payouts = append(payouts, *item)
	}
	return domain.ListResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Payouts:  payouts,
	}, nil
}
