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

	"github.com/aurumly/treasury/internal/campaign/domain"
	"github.com/aurumly/treasury/internal/campaign/repository"
)

func newTestService(t *testing.T, name string) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Campaign{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{DB: gdb, Log: zap.NewNop(), Repo: repository.Provide()})
	return svc, gdb, node
}

func seed(t *testing.T, gdb *gorm.DB, node *snowflake.Node, name string, multiplier float64, status domain.Status, start, end time.Time) {
	t.Helper()
	require.NoError(t, gdb.Create(&domain.Campaign{
		ID:         node.Generate(),
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		Multiplier: multiplier,
		Status:     status,
	}).Error)
}

func TestMultiplierOn_NoCampaign(t *testing.T) {
	svc, _, _ := newTestService(t, "campaign_none")

	multiplier, active, err := svc.MultiplierOn(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, float64(1), multiplier)
	assert.Nil(t, active)
}

func TestMultiplierOn_HighestWinsNoStacking(t *testing.T) {
	svc, gdb, node := newTestService(t, "campaign_highest")
	now := time.Now().UTC()

	seed(t, gdb, node, "diwali", 2, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
	seed(t, gdb, node, "akshaya", 3, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	multiplier, active, err := svc.MultiplierOn(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, float64(3), multiplier)
	require.NotNil(t, active)
	assert.Equal(t, "akshaya", active.Name)
}

func TestMultiplierOn_IgnoresInactiveAndOutOfWindow(t *testing.T) {
	svc, gdb, node := newTestService(t, "campaign_window")
	now := time.Now().UTC()

	seed(t, gdb, node, "disabled", 5, domain.StatusInactive, now.Add(-time.Hour), now.Add(time.Hour))
	seed(t, gdb, node, "upcoming", 4, domain.StatusActive, now.Add(time.Hour), now.Add(2*time.Hour))
	seed(t, gdb, node, "expired", 4, domain.StatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))

	multiplier, active, err := svc.MultiplierOn(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, float64(1), multiplier)
	assert.Nil(t, active)
}
