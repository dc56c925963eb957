package account

import (
	"github.com/aurumly/treasury/internal/account/repository"
	"github.com/aurumly/treasury/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
