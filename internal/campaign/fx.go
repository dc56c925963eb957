package campaign

import (
	"github.com/aurumly/treasury/internal/campaign/repository"
	"github.com/aurumly/treasury/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
