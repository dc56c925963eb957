package migration

import (
	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	campaigndomain "github.com/aurumly/treasury/internal/campaign/domain"
	commissiondomain "github.com/aurumly/treasury/internal/commission/domain"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	payoutdomain "github.com/aurumly/treasury/internal/payout/domain"
	"github.com/aurumly/treasury/internal/referral"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run applies the schema. AutoMigrate only adds missing columns and indexes,
// so it is safe to run on every boot.
func Run(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	return db.AutoMigrate(
		&accountdomain.Account{},
		&ledgerdomain.Entry{},
		&commissiondomain.Record{},
		&payoutdomain.Payout{},
		&campaigndomain.Campaign{},
		&referral.Assignment{},
	)
}
