package commission

import (
	"github.com/aurumly/treasury/internal/commission/domain"
	"github.com/aurumly/treasury/internal/commission/repository"
	"github.com/aurumly/treasury/internal/commission/service"
	"github.com/aurumly/treasury/internal/referral"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(r *referral.Resolver) domain.PartnerResolver { return r }),
	fx.Provide(service.New),
)
