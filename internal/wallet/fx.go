package wallet

import (
	"github.com/aurumly/treasury/internal/wallet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("wallet.service",
	fx.Provide(service.New),
)
