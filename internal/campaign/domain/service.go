package domain

import (
	"context"
	"time"
)

type Service interface {
	// MultiplierOn returns the commission multiplier in effect at t, and the
	// campaign supplying it. Returns 1 and nil when no campaign is active.
	MultiplierOn(ctx context.Context, t time.Time) (float64, *Campaign, error)
}
