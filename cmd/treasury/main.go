package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/aurumly/treasury/internal/clock"
	"github.com/aurumly/treasury/internal/config"
	"github.com/aurumly/treasury/internal/lock"
	"github.com/aurumly/treasury/internal/logger"
	"github.com/aurumly/treasury/internal/metrics"
	"github.com/aurumly/treasury/internal/migration"
	"github.com/aurumly/treasury/internal/seed"
	"github.com/aurumly/treasury/internal/server"
	"github.com/aurumly/treasury/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		lock.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		migration.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
