package service

import (
	"context"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/metrics"
	"github.com/aurumly/treasury/internal/wallet/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type walletService struct {
	log      *zap.Logger
	accounts accountdomain.Service
	ledger   ledgerdomain.Service
	metrics  *metrics.Metrics
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Accounts accountdomain.Service
	Ledger   ledgerdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

func New(p Params) domain.Service {
	return &walletService{
		log:      p.Log.Named("wallet.service"),
		accounts: p.Accounts,
		ledger:   p.Ledger,
		metrics:  p.Metrics,
	}
}

func (s *walletService) TopUp(ctx context.Context, req domain.TopUpRequest) (*domain.MutationResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.ReferenceID == "" {
		return nil, domain.ErrInvalidReference
	}
	if _, err := s.accounts.Get(ctx, req.AccountID, accountdomain.RoleB2B); err != nil {
		return nil, err
	}

	entry, created, err := s.ledger.Append(ctx, ledgerdomain.Draft{
		AccountID:   req.AccountID,
		Kind:        ledgerdomain.KindWalletTopUp,
		Amount:      req.Amount,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.metrics.RecordWalletTopUp()
		s.log.Info("wallet topped up",
			zap.Int64("account_id", int64(req.AccountID)),
			zap.Int64("amount", req.Amount),
			zap.String("reference_id", req.ReferenceID),
			zap.String("payment_method", req.PaymentMethod),
		)
	}
	return s.result(ctx, req.AccountID, entry, created)
}

func (s *walletService) Debit(ctx context.Context, req domain.DebitRequest) (*domain.MutationResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.ReferenceID == "" {
		return nil, domain.ErrInvalidReference
	}
	if _, err := s.accounts.Get(ctx, req.AccountID, accountdomain.RoleB2B); err != nil {
		return nil, err
	}

	entry, created, err := s.ledger.Append(ctx, ledgerdomain.Draft{
		AccountID:   req.AccountID,
		Kind:        ledgerdomain.KindWalletDebit,
		Amount:      -req.Amount,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("wallet debited",
			zap.Int64("account_id", int64(req.AccountID)),
			zap.Int64("amount", req.Amount),
			zap.String("reference_id", req.ReferenceID),
		)
	}
	return s.result(ctx, req.AccountID, entry, created)
}

func (s *walletService) result(ctx context.Context, accountID snowflake.ID, entry *ledgerdomain.Entry, created bool) (*domain.MutationResult, error) {
	balance, err := s.ledger.BalanceAsOf(ctx, accountID, ledgerdomain.WalletKinds...)
	if err != nil {
		return nil, err
	}
	return &domain.MutationResult{
		Entry:    entry,
		Balance:  balance,
		Replayed: !created,
	}, nil
}

func (s *walletService) Balance(ctx context.Context, accountID snowflake.ID) (int64, error) {
	if _, err := s.accounts.Get(ctx, accountID, accountdomain.RoleB2B); err != nil {
		return 0, err
	}
	return s.ledger.BalanceAsOf(ctx, accountID, ledgerdomain.WalletKinds...)
}

func (s *walletService) Transactions(ctx context.Context, req domain.TransactionsRequest) (ledgerdomain.ListEntriesResponse, error) {
	if _, err := s.accounts.Get(ctx, req.AccountID, accountdomain.RoleB2B); err != nil {
		return ledgerdomain.ListEntriesResponse{}, err
	}
	return s.ledger.List(ctx, ledgerdomain.ListEntriesRequest{
		AccountID: req.AccountID,
		Kinds:     ledgerdomain.WalletKinds,
		Page:      req.Page,
	})
}
