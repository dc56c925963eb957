package service

import (
	"context"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	"github.com/aurumly/treasury/internal/balance/domain"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	payoutdomain "github.com/aurumly/treasury/internal/payout/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type balanceService struct {
	db       *gorm.DB
	log      *zap.Logger
	accounts accountdomain.Service
	ledger   ledgerdomain.Service
	payouts  payoutdomain.Repository
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Accounts accountdomain.Service
	Ledger   ledgerdomain.Service
	Payouts  payoutdomain.Repository
}

func New(p Params) domain.Service {
	return &balanceService{
		db:       p.DB,
		log:      p.Log.Named("balance.service"),
		accounts: p.Accounts,
		ledger:   p.Ledger,
		payouts:  p.Payouts,
	}
}

func (s *balanceService) Withdrawable(ctx context.Context, partnerID snowflake.ID) (int64, error) {
	if _, err := s.accounts.Get(ctx, partnerID, accountdomain.RolePartner); err != nil {
		return 0, err
	}
	return s.ledger.BalanceAsOf(ctx, partnerID, ledgerdomain.WithdrawableKinds...)
}

func (s *balanceService) Earnings(ctx context.Context, partnerID snowflake.ID) (domain.Summary, error) {
	if _, err := s.accounts.Get(ctx, partnerID, accountdomain.RolePartner); err != nil {
		return domain.Summary{}, err
	}

	withdrawable, err := s.ledger.BalanceAsOf(ctx, partnerID, ledgerdomain.WithdrawableKinds...)
	if err != nil {
		return domain.Summary{}, err
	}
	earned, err := s.ledger.BalanceAsOf(ctx, partnerID, ledgerdomain.KindOrderCommission)
	if err != nil {
		return domain.Summary{}, err
	}
	pending, err := s.payouts.SumAmount(ctx, s.db, partnerID, payoutdomain.StatusPending)
	if err != nil {
		return domain.Summary{}, err
	}
	paid, err := s.payouts.SumAmount(ctx, s.db, partnerID, payoutdomain.StatusPaid)
	if err != nil {
		return domain.Summary{}, err
	}

	// Total earnings is the commission fold on its own. It always equals
	// withdrawable + pending + paid, since every reservation is either still
	// pending, finalized as paid, or released back.
	return domain.Summary{
		Withdrawable:     withdrawable,
		AlreadyRequested: pending,
		TotalPaid:        paid,
		TotalEarnings:    earned,
	}, nil
}
