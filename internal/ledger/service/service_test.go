package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/ledger/repository"
	"github.com/aurumly/treasury/internal/lock"
	"github.com/aurumly/treasury/pkg/db/pagination"
)

func newTestService(t *testing.T, name string) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Entry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Locks: lock.NewLocalManager(),
	})
	return svc, gdb
}

func TestAppend_CreditAndFold(t *testing.T) {
	svc, _ := newTestService(t, "ledger_credit")
	ctx := context.Background()
	account := snowflake.ID(1001)

	entry, created, err := svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindOrderCommission,
		Amount:      500,
		ReferenceID: "order-1",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(500), entry.Amount)

	balance, err := svc.BalanceAsOf(ctx, account, domain.WithdrawableKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestAppend_ReplayReturnsOriginal(t *testing.T) {
	svc, _ := newTestService(t, "ledger_replay")
	ctx := context.Background()
	account := snowflake.ID(1002)

	draft := domain.Draft{
		AccountID:   account,
		Kind:        domain.KindWalletTopUp,
		Amount:      10000,
		ReferenceID: "topup-abc",
	}

	first, created, err := svc.Append(ctx, draft)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Append(ctx, draft)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	balance, err := svc.BalanceAsOf(ctx, account, domain.WalletKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), balance, "a replay must not double-count")
}

func TestAppend_RejectsWrongSign(t *testing.T) {
	svc, _ := newTestService(t, "ledger_sign")
	ctx := context.Background()

	_, _, err := svc.Append(ctx, domain.Draft{
		AccountID:   snowflake.ID(1003),
		Kind:        domain.KindOrderCommission,
		Amount:      -500,
		ReferenceID: "order-neg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, _, err = svc.Append(ctx, domain.Draft{
		AccountID:   snowflake.ID(1003),
		Kind:        domain.KindWalletDebit,
		Amount:      500,
		ReferenceID: "debit-pos",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestAppend_ValidatesDraft(t *testing.T) {
	svc, _ := newTestService(t, "ledger_validate")
	ctx := context.Background()

	_, _, err := svc.Append(ctx, domain.Draft{Kind: domain.KindWalletTopUp, Amount: 10, ReferenceID: "r"})
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	_, _, err = svc.Append(ctx, domain.Draft{AccountID: 1, Kind: "BOGUS", Amount: 10, ReferenceID: "r"})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	_, _, err = svc.Append(ctx, domain.Draft{AccountID: 1, Kind: domain.KindWalletTopUp, Amount: 10, ReferenceID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, _, err = svc.Append(ctx, domain.Draft{AccountID: 1, Kind: domain.KindWalletTopUp, Amount: 0, ReferenceID: "r"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestAppend_InsufficientWalletBalance(t *testing.T) {
	svc, _ := newTestService(t, "ledger_wallet_floor")
	ctx := context.Background()
	account := snowflake.ID(1004)

	_, _, err := svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindWalletTopUp,
		Amount:      300,
		ReferenceID: "topup-1",
	})
	require.NoError(t, err)

	_, _, err = svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindWalletDebit,
		Amount:      -500,
		ReferenceID: "debit-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := svc.BalanceAsOf(ctx, account, domain.WalletKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance, "a rejected debit leaves no entry behind")
}

func TestAppend_InsufficientWithdrawable(t *testing.T) {
	svc, _ := newTestService(t, "ledger_withdrawable_floor")
	ctx := context.Background()
	account := snowflake.ID(1005)

	_, _, err := svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindOrderCommission,
		Amount:      1000,
		ReferenceID: "order-1",
	})
	require.NoError(t, err)

	_, _, err = svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindPayoutReserved,
		Amount:      -1500,
		ReferenceID: "payout-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientWithdrawable)
}

func TestAppend_ConcurrentReservationsSerialize(t *testing.T) {
	svc, _ := newTestService(t, "ledger_concurrent")
	ctx := context.Background()
	account := snowflake.ID(1006)

	_, _, err := svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindOrderCommission,
		Amount:      1000,
		ReferenceID: "order-1",
	})
	require.NoError(t, err)

	// Two reservations of 800 against a balance of 1000: exactly one may win.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Append(ctx, domain.Draft{
				AccountID:   account,
				Kind:        domain.KindPayoutReserved,
				Amount:      -800,
				ReferenceID: fmt.Sprintf("payout-%d", i),
			})
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientWithdrawable)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	balance, err := svc.BalanceAsOf(ctx, account, domain.WithdrawableKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(t, "ledger_list")
	ctx := context.Background()
	account := snowflake.ID(1007)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Append(ctx, domain.Draft{
			AccountID:   account,
			Kind:        domain.KindWalletTopUp,
			Amount:      100,
			ReferenceID: fmt.Sprintf("topup-%d", i),
		})
		require.NoError(t, err)
	}
	_, _, err := svc.Append(ctx, domain.Draft{
		AccountID:   account,
		Kind:        domain.KindOrderCommission,
		Amount:      100,
		ReferenceID: "order-1",
	})
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListEntriesRequest{
		AccountID: account,
		Kinds:     domain.WalletKinds,
		Page:      pagination.Pagination{Page: 1, Size: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.Entries, 3)
	for _, entry := range resp.Entries {
		assert.Equal(t, domain.KindWalletTopUp, entry.Kind)
	}
}
