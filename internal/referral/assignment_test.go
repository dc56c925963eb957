package referral

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPartnerFor(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:referral_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Assignment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	partner := node.Generate()
	require.NoError(t, gdb.Create(&Assignment{
		ID:               node.Generate(),
		UserID:           snowflake.ID(42),
		PartnerAccountID: partner,
	}).Error)

	resolver := NewResolver(gdb)

	got, err := resolver.PartnerFor(context.Background(), snowflake.ID(42))
	require.NoError(t, err)
	assert.Equal(t, partner, got)

	none, err := resolver.PartnerFor(context.Background(), snowflake.ID(77))
	require.NoError(t, err)
	assert.Zero(t, none, "users without an assignment have no attributed partner")
}
