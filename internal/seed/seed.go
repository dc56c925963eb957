package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	campaigndomain "github.com/aurumly/treasury/internal/campaign/domain"
	"github.com/aurumly/treasury/internal/config"
	"github.com/aurumly/treasury/internal/referral"
)

const (
	demoPartnerOwner = snowflake.ID(9001)
	demoB2BOwner     = snowflake.ID(9002)
	demoUser         = snowflake.ID(9101)
)

// EnsureDevFixtures seeds a demo partner, a demo B2B account, a referral
// assignment linking a demo user to the partner, and one active campaign.
// Every insert is idempotent, so restarts do not duplicate rows.
func EnsureDevFixtures(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		partner, err := ensureAccountTx(ctx, tx, node, demoPartnerOwner, accountdomain.RolePartner)
		if err != nil {
			return err
		}
		if _, err := ensureAccountTx(ctx, tx, node, demoB2BOwner, accountdomain.RoleB2B); err != nil {
			return err
		}
		if err := ensureAssignmentTx(ctx, tx, node, demoUser, partner.ID); err != nil {
			return err
		}
		return ensureCampaignTx(ctx, tx, node)
	})
}

func ensureAccountTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, owner snowflake.ID, role accountdomain.Role) (accountdomain.Account, error) {
	var account accountdomain.Account
	err := tx.WithContext(ctx).Where("owner_id = ? AND role = ?", owner, role).First(&account).Error
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, err
	}

	account = accountdomain.Account{
		ID:        node.Generate(),
		OwnerID:   owner,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	return account, tx.WithContext(ctx).Create(&account).Error
}

func ensureAssignmentTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, user, partnerAccount snowflake.ID) error {
	var assignment referral.Assignment
	err := tx.WithContext(ctx).Where("user_id = ?", user).First(&assignment).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.WithContext(ctx).Create(&referral.Assignment{
		ID:               node.Generate(),
		UserID:           user,
		PartnerAccountID: partnerAccount,
		CreatedAt:        time.Now().UTC(),
	}).Error
}

func ensureCampaignTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var campaign campaigndomain.Campaign
	err := tx.WithContext(ctx).Where("name = ?", "launch-boost").First(&campaign).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&campaigndomain.Campaign{
		ID:         node.Generate(),
		Name:       "launch-boost",
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
		Multiplier: 2,
		Status:     campaigndomain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error
}

// Module seeds development fixtures after migrations. Production boots skip it.
var Module = fx.Module("seed",
	fx.Invoke(func(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
		if cfg.Environment == "production" {
			return nil
		}
		log.Named("seed").Info("seeding development fixtures")
		return EnsureDevFixtures(db)
	}),
)
