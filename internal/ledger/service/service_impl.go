package service

import (
	"context"
	"strings"
	"time"

	"github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/lock"
	"github.com/aurumly/treasury/internal/metrics"
	"github.com/aurumly/treasury/pkg/db"
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Locks   lock.Manager
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	locks   lock.Manager
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("ledger.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		locks:   p.Locks,
		metrics: p.Metrics,
	}
}

func (s *Service) Append(ctx context.Context, draft domain.Draft) (*domain.Entry, bool, error) {
	if err := validateDraft(draft); err != nil {
		return nil, false, err
	}

	release, err := s.locks.Acquire(ctx, draft.AccountID.String())
	if err != nil {
		return nil, false, err
	}
	defer release()

	var (
		entry   *domain.Entry
		created bool
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, created, txErr = s.appendLocked(ctx, tx, draft)
		return txErr
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		s.metrics.RecordLedgerEntry(string(draft.Kind))
	}
	return entry, created, nil
}

func (s *Service) AppendTx(ctx context.Context, tx *gorm.DB, draft domain.Draft) (*domain.Entry, bool, error) {
	if err := validateDraft(draft); err != nil {
		return nil, false, err
	}
	entry, created, err := s.appendLocked(ctx, tx, draft)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.metrics.RecordLedgerEntry(string(draft.Kind))
	}
	return entry, created, nil
}

// appendLocked runs the dedupe lookup, invariant check and insert. The caller
// holds the account lock and supplies the transaction.
func (s *Service) appendLocked(ctx context.Context, tx *gorm.DB, draft domain.Draft) (*domain.Entry, bool, error) {
	existing, err := s.repo.FindByReference(ctx, tx, draft.AccountID, draft.Kind, draft.ReferenceID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := s.checkInvariant(ctx, tx, draft); err != nil {
		return nil, false, err
	}

	entry := &domain.Entry{
		ID:          s.genID.Generate(),
		AccountID:   draft.AccountID,
		Kind:        draft.Kind,
		Amount:      draft.Amount,
		ReferenceID: draft.ReferenceID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		// The unique index is the backstop for replays that raced past the
		// lookup (e.g. a retried webhook on another instance).
		if db.IsDuplicateKeyErr(err) {
			existing, findErr := s.repo.FindByReference(ctx, tx, draft.AccountID, draft.Kind, draft.ReferenceID)
			if findErr != nil {
				return nil, false, findErr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return entry, true, nil
}

// checkInvariant rejects drafts that would drive a balance fold negative.
// Credits can never breach an invariant; only the two debit kinds are checked.
func (s *Service) checkInvariant(ctx context.Context, tx *gorm.DB, draft domain.Draft) error {
	switch draft.Kind {
	case domain.KindWalletDebit:
		balance, err := s.repo.SumByKinds(ctx, tx, draft.AccountID, domain.WalletKinds)
		if err != nil {
			return err
		}
		if balance+draft.Amount < 0 {
			return domain.ErrInsufficientBalance
		}
	case domain.KindPayoutReserved:
		withdrawable, err := s.repo.SumByKinds(ctx, tx, draft.AccountID, domain.WithdrawableKinds)
		if err != nil {
			return err
		}
		if withdrawable+draft.Amount < 0 {
			return domain.ErrInsufficientWithdrawable
		}
	}
	return nil
}

func (s *Service) BalanceAsOf(ctx context.Context, accountID snowflake.ID, kinds ...domain.Kind) (int64, error) {
	if accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}
	if len(kinds) == 0 {
		return 0, domain.ErrInvalidKind
	}
	return s.repo.SumByKinds(ctx, s.db, accountID, kinds)
}

func (s *Service) List(ctx context.Context, req domain.ListEntriesRequest) (domain.ListEntriesResponse, error) {
	if req.AccountID == 0 {
		return domain.ListEntriesResponse{}, domain.ErrInvalidAccount
	}

	items, total, err := s.repo.List(ctx, s.db, req.AccountID, req.Kinds, req.Page)
	if err != nil {
		return domain.ListEntriesResponse{}, err
	}

	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, *item)
	}
	return domain.ListEntriesResponse{
		PageInfo: pagination.BuildPageInfo(req.Page, total),
		Entries:  entries,
	}, nil
}

func validateDraft(draft domain.Draft) error {
	if draft.AccountID == 0 {
		return domain.ErrInvalidAccount
	}
	if !draft.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if strings.TrimSpace(draft.ReferenceID) == "" {
		return domain.ErrInvalidReference
	}
	if draft.Amount == 0 {
		return domain.ErrInvalidAmount
	}
	if draft.Kind.Credit() != (draft.Amount > 0) {
		return domain.ErrInvalidAmount
	}
	return nil
}
