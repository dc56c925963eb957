package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	accountrepo "github.com/aurumly/treasury/internal/account/repository"
	accountsvc "github.com/aurumly/treasury/internal/account/service"
	campaigndomain "github.com/aurumly/treasury/internal/campaign/domain"
	campaignrepo "github.com/aurumly/treasury/internal/campaign/repository"
	campaignsvc "github.com/aurumly/treasury/internal/campaign/service"
	"github.com/aurumly/treasury/internal/clock"
	"github.com/aurumly/treasury/internal/commission/domain"
	"github.com/aurumly/treasury/internal/commission/repository"
	"github.com/aurumly/treasury/internal/config"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	ledgerrepo "github.com/aurumly/treasury/internal/ledger/repository"
	ledgersvc "github.com/aurumly/treasury/internal/ledger/service"
	"github.com/aurumly/treasury/internal/lock"
	"github.com/aurumly/treasury/internal/referral"
)

type testEnv struct {
	db         *gorm.DB
	node       *snowflake.Node
	commission domain.Service
	ledger     ledgerdomain.Service
	partnerID  snowflake.ID
	userID     snowflake.ID
}

func newTestEnv(t *testing.T, name string, cfg config.Config) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&accountdomain.Account{},
		&ledgerdomain.Entry{},
		&domain.Record{},
		&campaigndomain.Campaign{},
		&referral.Assignment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	accounts := accountsvc.New(accountsvc.Params{DB: gdb, Log: log, GenID: node, Repo: accountrepo.Provide()})
	ledger := ledgersvc.New(ledgersvc.Params{
		DB:    gdb,
		Log:   log,
		GenID: node,
		Repo:  ledgerrepo.Provide(),
		Locks: lock.NewLocalManager(),
	})
	campaigns := campaignsvc.New(campaignsvc.Params{DB: gdb, Log: log, Repo: campaignrepo.Provide()})

	env := &testEnv{db: gdb, node: node, ledger: ledger, userID: snowflake.ID(42)}

	partner, err := accounts.GetOrCreate(context.Background(), snowflake.ID(7), accountdomain.RolePartner)
	require.NoError(t, err)
	env.partnerID = partner.ID

	require.NoError(t, gdb.Create(&referral.Assignment{
		ID:               node.Generate(),
		UserID:           env.userID,
		PartnerAccountID: partner.ID,
		CreatedAt:        time.Now().UTC(),
	}).Error)

	env.commission = New(Params{
		DB:        gdb,
		Log:       log,
		GenID:     node,
		Cfg:       cfg,
		Clock:     clock.NewSystemClock(),
		Repo:      repository.Provide(),
		Ledger:    ledger,
		Campaigns: campaigns,
		Resolver:  referral.NewResolver(gdb),
	})
	return env
}

func defaultConfig() config.Config {
	return config.Config{
		CommissionDefaultRateBps: 200,
		CommissionRatesBps:       map[string]int64{"sip": 150},
	}
}

func (e *testEnv) addCampaign(t *testing.T, multiplier float64, status campaigndomain.Status) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, e.db.Create(&campaigndomain.Campaign{
		ID:         e.node.Generate(),
		Name:       "festive",
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(time.Hour),
		Multiplier: multiplier,
		Status:     status,
	}).Error)
}

func TestRecordOrderCommission_AppliesRateAndMultiplier(t *testing.T) {
	env := newTestEnv(t, "commission_rate", defaultConfig())
	env.addCampaign(t, 2, campaigndomain.StatusActive)
	ctx := context.Background()

	// 10000 at 2% doubled by the campaign is 400.
	record, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
		OrderID:     "order-100",
		UserID:      env.userID,
		OrderType:   "buy",
		OrderAmount: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(400), record.CommissionAmount)
	assert.Equal(t, int64(200), record.RateBps)
	assert.Equal(t, float64(2), record.Multiplier)
	assert.Equal(t, env.partnerID, record.PartnerID)
	assert.Equal(t, domain.StatusApproved, record.Status)

	balance, err := env.ledger.BalanceAsOf(ctx, env.partnerID, ledgerdomain.WithdrawableKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)
}

func TestRecordOrderCommission_PerTypeRate(t *testing.T) {
	env := newTestEnv(t, "commission_type_rate", defaultConfig())
	ctx := context.Background()

	record, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
		OrderID:     "order-101",
		UserID:      env.userID,
		OrderType:   "sip",
		OrderAmount: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), record.CommissionAmount)
	assert.Equal(t, int64(150), record.RateBps)
	assert.Equal(t, float64(1), record.Multiplier)
}

func TestRecordOrderCommission_DoubleDeliveryIsIdempotent(t *testing.T) {
	env := newTestEnv(t, "commission_idempotent", defaultConfig())
	ctx := context.Background()

	event := domain.OrderEvent{
		OrderID:     "order-102",
		UserID:      env.userID,
		OrderType:   "buy",
		OrderAmount: 10000,
	}

	first, err := env.commission.RecordOrderCommission(ctx, event)
	require.NoError(t, err)

	second, err := env.commission.RecordOrderCommission(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	balance, err := env.ledger.BalanceAsOf(ctx, env.partnerID, ledgerdomain.WithdrawableKinds...)
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance, "a redelivered order must pay out once")
}

func TestRecordOrderCommission_UnattributedOrderSkips(t *testing.T) {
	env := newTestEnv(t, "commission_unattributed", defaultConfig())
	ctx := context.Background()

	_, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
		OrderID:     "order-103",
		UserID:      snowflake.ID(9999),
		OrderType:   "buy",
		OrderAmount: 10000,
	})
	assert.ErrorIs(t, err, domain.ErrUnattributedOrder)

	var count int64
	require.NoError(t, env.db.Model(&ledgerdomain.Entry{}).Count(&count).Error)
	assert.Zero(t, count, "unattributed orders must leave no ledger trace")
}

func TestRecordOrderCommission_ZeroAmountSkips(t *testing.T) {
	env := newTestEnv(t, "commission_zero", defaultConfig())
	ctx := context.Background()

	// 10 at 2% rounds to 0; the order is skipped, not recorded as nothing.
	_, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
		OrderID:     "order-105",
		UserID:      env.userID,
		OrderType:   "buy",
		OrderAmount: 10,
	})
	assert.ErrorIs(t, err, domain.ErrZeroCommission)

	var entries int64
	require.NoError(t, env.db.Model(&ledgerdomain.Entry{}).Count(&entries).Error)
	assert.Zero(t, entries, "zero commissions must leave no ledger trace")

	var records int64
	require.NoError(t, env.db.Model(&domain.Record{}).Count(&records).Error)
	assert.Zero(t, records)
}

func TestRecordOrderCommission_InactiveCampaignIgnored(t *testing.T) {
	env := newTestEnv(t, "commission_inactive", defaultConfig())
	env.addCampaign(t, 3, campaigndomain.StatusInactive)
	ctx := context.Background()

	record, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
		OrderID:     "order-104",
		UserID:      env.userID,
		OrderType:   "buy",
		OrderAmount: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), record.CommissionAmount)
	assert.Equal(t, float64(1), record.Multiplier)
}

func TestList_FiltersByPartnerAndType(t *testing.T) {
	env := newTestEnv(t, "commission_list", defaultConfig())
	ctx := context.Background()

	for i, orderType := range []string{"buy", "sip", "buy"} {
		_, err := env.commission.RecordOrderCommission(ctx, domain.OrderEvent{
			OrderID:     fmt.Sprintf("order-20%d", i),
			UserID:      env.userID,
			OrderType:   orderType,
			OrderAmount: 10000,
		})
		require.NoError(t, err)
	}

	resp, err := env.commission.List(ctx, domain.ListRequest{PartnerID: env.partnerID, OrderType: "buy"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)

	all, err := env.commission.List(ctx, domain.ListRequest{PartnerID: env.partnerID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}
