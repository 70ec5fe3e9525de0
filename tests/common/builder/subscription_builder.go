//go:build unit || e2e

package builder

import (
	"time"

	"coupon-wallet-service/internal/domain/subscription"

	"github.com/google/uuid"
)

type SubscriptionBuilder struct {
	ID                 uuid.UUID
	StoreID            uuid.UUID
	Status             subscription.Status
	PlanID             *uuid.UUID
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	GraceUntil         *time.Time
	CanceledAt         *time.Time
}

func NewSubscriptionBuilder() *SubscriptionBuilder {
	return &SubscriptionBuilder{
		ID:      uuid.New(),
		StoreID: uuid.New(),
		Status:  subscription.StatusInactive,
	}
}

func (b *SubscriptionBuilder) WithStore(storeID uuid.UUID) *SubscriptionBuilder {
	b.StoreID = storeID
	return b
}

func (b *SubscriptionBuilder) AsActive(periodStart, periodEnd time.Time) *SubscriptionBuilder {
	b.Status = subscription.StatusActive
	b.CurrentPeriodStart = &periodStart
	b.CurrentPeriodEnd = &periodEnd
	b.GraceUntil = &periodEnd
	return b
}

func (b *SubscriptionBuilder) AsGrace(graceUntil time.Time) *SubscriptionBuilder {
	b.Status = subscription.StatusGrace
	b.GraceUntil = &graceUntil
	return b
}

func (b *SubscriptionBuilder) AsCanceled(canceledAt time.Time) *SubscriptionBuilder {
	b.Status = subscription.StatusCanceled
	b.CanceledAt = &canceledAt
	return b
}

func (b *SubscriptionBuilder) WithPlan(planID uuid.UUID) *SubscriptionBuilder {
	b.PlanID = &planID
	return b
}

func (b *SubscriptionBuilder) Build() subscription.StoreSubscription {
	return subscription.StoreSubscription{
		ID:                 b.ID,
		StoreID:            b.StoreID,
		Status:             b.Status,
		PlanID:             b.PlanID,
		CurrentPeriodStart: b.CurrentPeriodStart,
		CurrentPeriodEnd:   b.CurrentPeriodEnd,
		GraceUntil:         b.GraceUntil,
		CanceledAt:         b.CanceledAt,
	}
}
