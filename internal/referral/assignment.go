package referral

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Assignment links a retail user to the partner credited for their orders.
// Rows are written by the referral subsystem at signup; this core only reads
// them.
type Assignment struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID           snowflake.ID `gorm:"not null;uniqueIndex" json:"user_id"`
	PartnerAccountID snowflake.ID `gorm:"not null;index" json:"partner_account_id"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Assignment) TableName() string { return "referral_assignments" }

// Resolver answers which partner, if any, is attributed a user's orders.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// PartnerFor returns the attributed partner account id, or 0 when the user
// has no referral assignment.
func (r *Resolver) PartnerFor(ctx context.Context, userID snowflake.ID) (snowflake.ID, error) {
	var assignment Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return assignment.PartnerAccountID, nil
}

// Module wires the referral-backed partner resolver.
var Module = fx.Module("referral",
	fx.Provide(NewResolver),
)
