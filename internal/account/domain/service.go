package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// GetOrCreate returns the owner's account for the role, creating it on
	// first use. Safe under concurrent calls for the same owner.
	GetOrCreate(ctx context.Context, ownerID snowflake.ID, role Role) (*Account, error)
	// Get returns the account, requiring the given role when role is non-empty.
	Get(ctx context.Context, id snowflake.ID, role Role) (*Account, error)
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrNotFound     = errors.New("account_not_found")
)
