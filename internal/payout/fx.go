package payout

import (
	"github.com/aurumly/treasury/internal/payout/repository"
	"github.com/aurumly/treasury/internal/payout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payout.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
