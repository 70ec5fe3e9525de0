//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-wallet-service/internal/domain/subscription"
	reqdto "coupon-wallet-service/internal/handler/dto/request"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookEnv struct {
	subs     *fakeSubscriptionRepo
	profiles *fakeProfileRepo
	plans    *fakePlanRepo
	audit    *recordingAudit
	clock    *clock.MockClock
	uc       commands.WebhookCommands

	storeID   uuid.UUID
	profileID uuid.UUID
}

func newWebhookEnv(now time.Time) *webhookEnv {
	storeID := uuid.New()
	profile := &subscription.BillingProfile{
		ID:          uuid.New(),
		StoreID:     storeID,
		BillingKey:  strPtr("bk_test_1"),
		CustomerKey: strPtr("ck_test_1"),
		Status:      subscription.ProfileActive,
	}
	env := &webhookEnv{
		subs:      newFakeSubscriptionRepo(),
		profiles:  newFakeProfileRepo(profile),
		plans:     newFakePlanRepo(),
		audit:     &recordingAudit{},
		clock:     clock.NewMockClock(now),
		storeID:   storeID,
		profileID: profile.ID,
	}
	env.uc = commands.NewWebhookCommands(env.subs, env.profiles, env.plans, env.audit, env.clock)
	return env
}

func successRequest(approvedAt *time.Time) reqdto.PaymentWebhookRequest {
	return reqdto.PaymentWebhookRequest{
		EventType:  commands.WebhookPaymentSuccess,
		BillingKey: strPtr("bk_test_1"),
		Data: reqdto.PaymentWebhookData{
			ApprovedAt: approvedAt,
			OrderID:    strPtr("order_001"),
			PaymentKey: strPtr("pay_001"),
		},
	}
}

func TestProcessPaymentWebhook(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("unknown event type is acknowledged as ignored", func(t *testing.T) {
		env := newWebhookEnv(now)

		ack, err := env.uc.ProcessPaymentWebhook(ctx, reqdto.PaymentWebhookRequest{EventType: "refund.completed"})
		require.NoError(t, err)
		assert.Equal(t, commands.AckIgnored, ack)

		assert.Equal(t, "billing.webhook_ignored", env.audit.lastType())
		assert.Empty(t, env.subs.upserts)
	})

	t.Run("resending an ignored event audits twice without mutating state", func(t *testing.T) {
		env := newWebhookEnv(now)
		req := reqdto.PaymentWebhookRequest{EventType: "refund.completed"}

		for range 2 {
			ack, err := env.uc.ProcessPaymentWebhook(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, commands.AckIgnored, ack)
		}

		// 監査証跡は再送ごとに積まれるが、実体の状態は変わらない
		require.Len(t, env.audit.entries, 2)
		for _, e := range env.audit.entries {
			assert.Equal(t, "billing.webhook_ignored", e.Type)
		}
		assert.Empty(t, env.subs.upserts)
		assert.Empty(t, env.profiles.statusUpdates)
	})

	t.Run("unresolvable billing keys are acknowledged as unmatched", func(t *testing.T) {
		env := newWebhookEnv(now)

		req := successRequest(&now)
		req.BillingKey = strPtr("bk_unknown")

		ack, err := env.uc.ProcessPaymentWebhook(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, commands.AckUnmatched, ack)

		assert.Equal(t, "billing.webhook_unmatched", env.audit.lastType())
		assert.Empty(t, env.subs.upserts)
	})

	t.Run("first settlement starts a subscription on default terms", func(t *testing.T) {
		env := newWebhookEnv(now)
		approvedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		ack, err := env.uc.ProcessPaymentWebhook(ctx, successRequest(&approvedAt))
		require.NoError(t, err)
		assert.Equal(t, commands.AckProcessed, ack)

		require.Len(t, env.subs.upserts, 1)
		sub := env.subs.upserts[0].Sub
		assert.Equal(t, env.storeID, sub.StoreID)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		require.NotNil(t, sub.CurrentPeriodStart)
		assert.Equal(t, approvedAt, *sub.CurrentPeriodStart)
		// プラン未登録の店舗は既定の1か月周期
		require.NotNil(t, sub.CurrentPeriodEnd)
		assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), *sub.CurrentPeriodEnd)
		assert.Equal(t, sub.CurrentPeriodEnd, sub.GraceUntil)
		assert.Nil(t, sub.CanceledAt)

		meta := env.subs.upserts[0].Metadata
		assert.Equal(t, commands.WebhookPaymentSuccess, meta["lastWebhookEvent"])
		assert.Equal(t, "pay_001", meta["lastPaymentKey"])
		assert.Equal(t, "order_001", meta["lastOrderId"])

		entry := env.audit.entries[len(env.audit.entries)-1]
		assert.Equal(t, "billing.payment_succeeded", entry.Type)
		require.NotNil(t, entry.OccurredAt)
		assert.Equal(t, approvedAt, *entry.OccurredAt)
	})

	t.Run("settlement honors the store's plan terms", func(t *testing.T) {
		env := newWebhookEnv(now)
		plan := &subscription.Plan{
			ID:            uuid.New(),
			Name:          "quarterly",
			Interval:      subscription.IntervalMonth,
			IntervalCount: 3,
		}
		env.plans.add(plan)
		env.subs.add(subscription.StoreSubscription{
			ID:      uuid.New(),
			StoreID: env.storeID,
			Status:  subscription.StatusInactive,
			PlanID:  &plan.ID,
		})

		approvedAt := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
		_, err := env.uc.ProcessPaymentWebhook(ctx, successRequest(&approvedAt))
		require.NoError(t, err)

		require.Len(t, env.subs.upserts, 1)
		// 2026-01-31 + 3か月は月末に丸められる
		assert.Equal(t, time.Date(2026, 4, 30, 9, 0, 0, 0, time.UTC), *env.subs.upserts[0].Sub.CurrentPeriodEnd)
	})

	t.Run("a dangling plan reference degrades to default terms", func(t *testing.T) {
		env := newWebhookEnv(now)
		missingPlanID := uuid.New()
		env.subs.add(subscription.StoreSubscription{
			ID:      uuid.New(),
			StoreID: env.storeID,
			Status:  subscription.StatusInactive,
			PlanID:  &missingPlanID,
		})

		_, err := env.uc.ProcessPaymentWebhook(ctx, successRequest(&now))
		require.NoError(t, err)

		require.Len(t, env.subs.upserts, 1)
		assert.Equal(t, now.AddDate(0, 1, 0), *env.subs.upserts[0].Sub.CurrentPeriodEnd)
	})

	t.Run("missing approvedAt falls back to the clock", func(t *testing.T) {
		env := newWebhookEnv(now)

		_, err := env.uc.ProcessPaymentWebhook(ctx, successRequest(nil))
		require.NoError(t, err)

		require.Len(t, env.subs.upserts, 1)
		assert.Equal(t, now, *env.subs.upserts[0].Sub.CurrentPeriodStart)
	})

	t.Run("failure after a settled period enters grace until that period ends", func(t *testing.T) {
		env := newWebhookEnv(now)
		periodEnd := now.AddDate(0, 1, 0)
		env.subs.add(builder.NewSubscriptionBuilder().WithStore(env.storeID).
			AsActive(now.AddDate(0, -1, 0), periodEnd).Build())

		failedAt := now.Add(time.Hour)
		ack, err := env.uc.ProcessPaymentWebhook(ctx, reqdto.PaymentWebhookRequest{
			EventType:  commands.WebhookPaymentFailed,
			BillingKey: strPtr("bk_test_1"),
			Data: reqdto.PaymentWebhookData{
				FailedAt: &failedAt,
				OrderID:  strPtr("order_002"),
				Message:  strPtr("card declined"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, commands.AckGrace, ack)

		require.Len(t, env.subs.upserts, 1)
		sub := env.subs.upserts[0].Sub
		assert.Equal(t, subscription.StatusGrace, sub.Status)
		require.NotNil(t, sub.GraceUntil)
		assert.Equal(t, periodEnd, *sub.GraceUntil)

		entry := env.audit.entries[len(env.audit.entries)-1]
		assert.Equal(t, "billing.payment_failed", entry.Type)
		assert.Equal(t, "card declined", entry.Message)
	})

	t.Run("failure with no period on record gets the fallback window", func(t *testing.T) {
		env := newWebhookEnv(now)

		failedAt := now
		ack, err := env.uc.ProcessPaymentWebhook(ctx, reqdto.PaymentWebhookRequest{
			EventType:  commands.WebhookPaymentFailed,
			BillingKey: strPtr("bk_test_1"),
			Data:       reqdto.PaymentWebhookData{FailedAt: &failedAt},
		})
		require.NoError(t, err)
		assert.Equal(t, commands.AckGrace, ack)

		require.Len(t, env.subs.upserts, 1)
		require.NotNil(t, env.subs.upserts[0].Sub.GraceUntil)
		assert.Equal(t, failedAt.Add(subscription.GraceFallback), *env.subs.upserts[0].Sub.GraceUntil)
	})

	t.Run("cancellation terminates the subscription and revokes the profile", func(t *testing.T) {
		env := newWebhookEnv(now)
		env.subs.add(builder.NewSubscriptionBuilder().WithStore(env.storeID).
			AsActive(now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)).Build())

		canceledAt := now
		ack, err := env.uc.ProcessPaymentWebhook(ctx, reqdto.PaymentWebhookRequest{
			EventType:   commands.WebhookSubscriptionCanceled,
			CustomerKey: strPtr("ck_test_1"),
			Data:        reqdto.PaymentWebhookData{CanceledAt: &canceledAt},
		})
		require.NoError(t, err)
		assert.Equal(t, commands.AckCanceled, ack)

		require.Len(t, env.subs.upserts, 1)
		sub := env.subs.upserts[0].Sub
		assert.Equal(t, subscription.StatusCanceled, sub.Status)
		assert.Nil(t, sub.GraceUntil)
		require.NotNil(t, sub.CanceledAt)
		assert.Equal(t, canceledAt, *sub.CanceledAt)

		require.Len(t, env.profiles.statusUpdates, 1)
		assert.Equal(t, env.profileID, env.profiles.statusUpdates[0].ID)
		assert.Equal(t, subscription.ProfileRevoked, env.profiles.statusUpdates[0].Status)

		assert.Equal(t, "billing.subscription_canceled", env.audit.lastType())
	})

	t.Run("profile revocation failure does not fail the cancellation", func(t *testing.T) {
		env := newWebhookEnv(now)
		env.profiles.updateErr = errors.New("connection reset")

		canceledAt := now
		ack, err := env.uc.ProcessPaymentWebhook(ctx, reqdto.PaymentWebhookRequest{
			EventType:   commands.WebhookSubscriptionCanceled,
			CustomerKey: strPtr("ck_test_1"),
			Data:        reqdto.PaymentWebhookData{CanceledAt: &canceledAt},
		})
		// サブスク行のキャンセルが成立していれば資格は失われる
		require.NoError(t, err)
		assert.Equal(t, commands.AckCanceled, ack)
		require.Len(t, env.subs.upserts, 1)
		assert.Equal(t, subscription.StatusCanceled, env.subs.upserts[0].Sub.Status)
	})
}
