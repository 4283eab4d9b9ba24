package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type RewardKind string

const (
	RewardKindPercentage RewardKind = "percentage"
	RewardKindFixed      RewardKind = "fixed"
)

type RewardStatus string

const (
	RewardStatusActive RewardStatus = "active"
	RewardStatusUsed   RewardStatus = "used"
)

type UserReward struct {
	ID     int
	UserID int
	Name   string
	Kind   RewardKind
	Value  decimal.Decimal
	Status RewardStatus
	UsedAt *time.Time
}

// Apply returns total reduced by the reward. The result never drops below zero.
func (r *UserReward) Apply(total decimal.Decimal) decimal.Decimal {
	var discounted decimal.Decimal

	switch r.Kind {
	case RewardKindPercentage:
		rate := decimal.Min(r.Value, decimal.NewFromInt(100)).Div(decimal.NewFromInt(100))
		discounted = total.Sub(total.Mul(rate))
	case RewardKindFixed:
		discounted = total.Sub(r.Value)
	default:
		return total
	}

	return decimal.Max(discounted, decimal.Zero)
}

type PointsEntry struct {
	ID           int
	UserID       int
	BookingID    *int
	UserRewardID *int
	Points       int
	Reason       string
	CreatedAt    time.Time
}

type RewardRepository interface {
	// GetUserReward returns a reward of userID in any status.
	GetUserReward(ctx context.Context, id, userID int) (*UserReward, error)
	// MarkUsed redeems an active reward. A reward that is not active returns
	// ErrEditConflict.
	MarkUsed(ctx context.Context, id int, usedAt time.Time) error
	Restore(ctx context.Context, id int) error
	// AppendPoints adds a ledger entry and moves the user's balance. A second
	// entry for the same booking returns ErrEditConflict.
	AppendPoints(ctx context.Context, entry *PointsEntry) error
}
