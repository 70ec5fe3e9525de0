//go:build unit

package subscription_test

import (
	"testing"
	"time"

	"coupon-wallet-service/internal/domain/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSuccessfulPayment(t *testing.T) {
	approvedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("opens an active period", func(t *testing.T) {
		sub := subscription.StoreSubscription{Status: subscription.StatusInactive}
		next := sub.WithSuccessfulPayment(approvedAt, periodEnd)

		assert.Equal(t, subscription.StatusActive, next.Status)
		require.NotNil(t, next.CurrentPeriodStart)
		assert.Equal(t, approvedAt, *next.CurrentPeriodStart)
		require.NotNil(t, next.CurrentPeriodEnd)
		assert.Equal(t, periodEnd, *next.CurrentPeriodEnd)
		require.NotNil(t, next.GraceUntil)
		assert.Equal(t, periodEnd, *next.GraceUntil)
	})

	t.Run("recovery from cancellation clears canceledAt", func(t *testing.T) {
		canceledAt := approvedAt.Add(-time.Hour)
		sub := subscription.StoreSubscription{Status: subscription.StatusCanceled, CanceledAt: &canceledAt}
		next := sub.WithSuccessfulPayment(approvedAt, periodEnd)

		assert.Equal(t, subscription.StatusActive, next.Status)
		assert.Nil(t, next.CanceledAt)
	})
}

func TestWithFailedPayment(t *testing.T) {
	failedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("grace deadline is the existing period end", func(t *testing.T) {
		periodEnd := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		sub := subscription.StoreSubscription{Status: subscription.StatusActive, CurrentPeriodEnd: &periodEnd}
		next := sub.WithFailedPayment(failedAt)

		assert.Equal(t, subscription.StatusGrace, next.Status)
		require.NotNil(t, next.GraceUntil)
		assert.Equal(t, periodEnd, *next.GraceUntil)
	})

	t.Run("no period on record falls back to the fixed window", func(t *testing.T) {
		sub := subscription.StoreSubscription{Status: subscription.StatusInactive}
		next := sub.WithFailedPayment(failedAt)

		assert.Equal(t, subscription.StatusGrace, next.Status)
		require.NotNil(t, next.GraceUntil)
		assert.Equal(t, failedAt.Add(subscription.GraceFallback), *next.GraceUntil)
	})
}

func TestWithCancellation(t *testing.T) {
	canceledAt := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	graceUntil := canceledAt.Add(time.Hour)
	sub := subscription.StoreSubscription{Status: subscription.StatusGrace, GraceUntil: &graceUntil}

	next := sub.WithCancellation(canceledAt)

	assert.Equal(t, subscription.StatusCanceled, next.Status)
	assert.Nil(t, next.GraceUntil)
	require.NotNil(t, next.CanceledAt)
	assert.Equal(t, canceledAt, *next.CanceledAt)
}

func TestGrantsClaim(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("active always grants", func(t *testing.T) {
		sub := subscription.StoreSubscription{Status: subscription.StatusActive}
		assert.True(t, sub.GrantsClaim(now))
	})

	t.Run("grace grants only until its deadline", func(t *testing.T) {
		deadline := now.Add(time.Hour)
		sub := subscription.StoreSubscription{Status: subscription.StatusGrace, GraceUntil: &deadline}

		assert.True(t, sub.GrantsClaim(now))
		assert.True(t, sub.GrantsClaim(deadline), "deadline itself is still within grace")
		assert.False(t, sub.GrantsClaim(deadline.Add(time.Second)))
	})

	t.Run("grace without deadline does not grant", func(t *testing.T) {
		sub := subscription.StoreSubscription{Status: subscription.StatusGrace}
		assert.False(t, sub.GrantsClaim(now))
	})

	t.Run("canceled and inactive never grant", func(t *testing.T) {
		assert.False(t, subscription.StoreSubscription{Status: subscription.StatusCanceled}.GrantsClaim(now))
		assert.False(t, subscription.StoreSubscription{Status: subscription.StatusInactive}.GrantsClaim(now))
	})
}
