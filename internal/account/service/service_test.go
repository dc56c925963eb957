package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aurumly/treasury/internal/account/domain"
	"github.com/aurumly/treasury/internal/account/repository"
)

func newTestService(t *testing.T, name string) domain.Service {
	svc, _, _ := newTestServiceWithDB(t, name)
	return svc
}

func newTestServiceWithDB(t *testing.T, name string) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Account{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{DB: gdb, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
	return svc, gdb, node
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	svc := newTestService(t, "account_idempotent")
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, snowflake.ID(100), domain.RolePartner)
	require.NoError(t, err)

	second, err := svc.GetOrCreate(ctx, snowflake.ID(100), domain.RolePartner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreate_RolesAreSeparateAccounts(t *testing.T) {
	svc := newTestService(t, "account_roles")
	ctx := context.Background()

	partner, err := svc.GetOrCreate(ctx, snowflake.ID(101), domain.RolePartner)
	require.NoError(t, err)
	b2b, err := svc.GetOrCreate(ctx, snowflake.ID(101), domain.RoleB2B)
	require.NoError(t, err)
	assert.NotEqual(t, partner.ID, b2b.ID)
}

func TestGetOrCreate_Validation(t *testing.T) {
	svc := newTestService(t, "account_validation")
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, 0, domain.RolePartner)
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)

	_, err = svc.GetOrCreate(ctx, snowflake.ID(102), "ADMIN")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestGetOrCreate_LosingRacerAdoptsExistingRow(t *testing.T) {
	svc, gdb, node := newTestServiceWithDB(t, "account_race")
	ctx := context.Background()

	// A concurrent creator's row is already committed; the conflict-tolerant
	// insert must fall through to it rather than fail or duplicate.
	winner := &domain.Account{ID: node.Generate(), OwnerID: snowflake.ID(103), Role: domain.RolePartner}
	require.NoError(t, gdb.Create(winner).Error)

	account, err := svc.GetOrCreate(ctx, snowflake.ID(103), domain.RolePartner)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, account.ID)

	var count int64
	require.NoError(t, gdb.Model(&domain.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGet_EnforcesRole(t *testing.T) {
	svc := newTestService(t, "account_get")
	ctx := context.Background()

	partner, err := svc.GetOrCreate(ctx, snowflake.ID(104), domain.RolePartner)
	require.NoError(t, err)

	got, err := svc.Get(ctx, partner.ID, domain.RolePartner)
	require.NoError(t, err)
	assert.Equal(t, partner.ID, got.ID)

	_, err = svc.Get(ctx, partner.ID, domain.RoleB2B)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.Get(ctx, snowflake.ID(999999), domain.RolePartner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
