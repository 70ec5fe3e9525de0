package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-wallet-service/internal/domain/subscription"
	reqdto "coupon-wallet-service/internal/handler/dto/request"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/audit"

	"github.com/google/uuid"
)

// Webhook event types accepted from the payment processor.
const (
	WebhookPaymentSuccess       = "payment.success"
	WebhookPaymentFailed        = "payment.failed"
	WebhookSubscriptionCanceled = "subscription.canceled"
)

const (
	eventPaymentSucceeded     = "billing.payment_succeeded"
	eventPaymentFailed        = "billing.payment_failed"
	eventSubscriptionCanceled = "billing.subscription_canceled"
	eventWebhookIgnored       = "billing.webhook_ignored"
	eventWebhookUnmatched     = "billing.webhook_unmatched"
)

// Ack is the acknowledgement returned to the payment processor. Every
// well-formed webhook is acknowledged; unknown event types and unresolvable
// profiles are recorded and acked rather than erroring, so the processor
// never retries what this service will never handle.
type Ack string

const (
	AckProcessed Ack = "processed"
	AckGrace     Ack = "grace"
	AckCanceled  Ack = "canceled"
	AckIgnored   Ack = "ignored"
	AckUnmatched Ack = "unmatched"
)

type WebhookCommands interface {
	ProcessPaymentWebhook(ctx context.Context, req reqdto.PaymentWebhookRequest) (Ack, error)
}

type webhookUseCaseImpl struct {
	subRepo     SubscriptionRepository
	profileRepo BillingProfileRepository
	planRepo    PlanRepository
	audit       AuditRecorder
	clock       clock.Clock
}

func NewWebhookCommands(
	subRepo SubscriptionRepository,
	profileRepo BillingProfileRepository,
	planRepo PlanRepository,
	recorder AuditRecorder,
	clk clock.Clock,
) WebhookCommands {
	return &webhookUseCaseImpl{
		subRepo:     subRepo,
		profileRepo: profileRepo,
		planRepo:    planRepo,
		audit:       recorder,
		clock:       clk,
	}
}

// ProcessPaymentWebhook applies one payment-processor event to the store's
// subscription. Processing is idempotent per event: replaying a settlement
// recomputes the same period, replaying a failure re-enters the same grace
// window, replaying a cancellation stays canceled.
func (u *webhookUseCaseImpl) ProcessPaymentWebhook(ctx context.Context, req reqdto.PaymentWebhookRequest) (Ack, error) {
	switch req.EventType {
	case WebhookPaymentSuccess, WebhookPaymentFailed, WebhookSubscriptionCanceled:
	default:
		u.audit.MustRecord(ctx, audit.Entry{
			Type:    eventWebhookIgnored,
			Context: map[string]any{"eventType": req.EventType},
			Source:  "billing",
		})
		return AckIgnored, nil
	}

	profile, err := u.profileRepo.FindByKeys(ctx, req.BillingKey, req.CustomerKey)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			u.audit.MustRecord(ctx, audit.Entry{
				Type: eventWebhookUnmatched,
				Context: map[string]any{
					"eventType":   req.EventType,
					"billingKey":  req.BillingKey,
					"customerKey": req.CustomerKey,
				},
				Source: "billing",
			})
			return AckUnmatched, nil
		}
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sub, err := u.subRepo.FindByStoreID(ctx, profile.StoreID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// First webhook for this store: start from the default inactive row.
		sub = &subscription.StoreSubscription{
			ID:      uuid.New(),
			StoreID: profile.StoreID,
			Status:  subscription.StatusInactive,
		}
	}

	switch req.EventType {
	case WebhookPaymentSuccess:
		return u.applyPaymentSuccess(ctx, *sub, req)
	case WebhookPaymentFailed:
		return u.applyPaymentFailure(ctx, *sub, req)
	default:
		return u.applyCancellation(ctx, *sub, profile, req)
	}
}

func (u *webhookUseCaseImpl) applyPaymentSuccess(ctx context.Context, sub subscription.StoreSubscription, req reqdto.PaymentWebhookRequest) (Ack, error) {
	approvedAt := u.eventTime(req.Data.ApprovedAt)

	// A store with no plan on record bills on the default terms; Terms is
	// nil-safe so a dangling planId degrades the same way.
	var plan *subscription.Plan
	if sub.PlanID != nil {
		p, err := u.planRepo.FindByID(ctx, *sub.PlanID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		plan = p
	}
	interval, count := plan.Terms()
	periodEnd := subscription.PeriodEnd(approvedAt, interval, count)

	next := sub.WithSuccessfulPayment(approvedAt, periodEnd)
	if err := u.subRepo.Upsert(ctx, next, u.webhookMetadata(req)); err != nil {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.audit.MustRecord(ctx, audit.Entry{
		Type:       eventPaymentSucceeded,
		OccurredAt: &approvedAt,
		Context: map[string]any{
			"storeId":    next.StoreID.String(),
			"orderId":    req.Data.OrderID,
			"paymentKey": req.Data.PaymentKey,
		},
		Details: map[string]any{
			"periodStart": approvedAt,
			"periodEnd":   periodEnd,
		},
		Source: "billing",
	})
	return AckProcessed, nil
}

func (u *webhookUseCaseImpl) applyPaymentFailure(ctx context.Context, sub subscription.StoreSubscription, req reqdto.PaymentWebhookRequest) (Ack, error) {
	failedAt := u.eventTime(req.Data.FailedAt)

	next := sub.WithFailedPayment(failedAt)
	if err := u.subRepo.Upsert(ctx, next, u.webhookMetadata(req)); err != nil {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.audit.MustRecord(ctx, audit.Entry{
		Type:       eventPaymentFailed,
		OccurredAt: &failedAt,
		Message:    stringOrEmpty(req.Data.Message),
		Context: map[string]any{
			"storeId": next.StoreID.String(),
			"orderId": req.Data.OrderID,
		},
		Details: map[string]any{
			"graceUntil": next.GraceUntil,
		},
		Source: "billing",
	})
	return AckGrace, nil
}

func (u *webhookUseCaseImpl) applyCancellation(ctx context.Context, sub subscription.StoreSubscription, profile *subscription.BillingProfile, req reqdto.PaymentWebhookRequest) (Ack, error) {
	canceledAt := u.eventTime(req.Data.CanceledAt)

	next := sub.WithCancellation(canceledAt)
	if err := u.subRepo.Upsert(ctx, next, u.webhookMetadata(req)); err != nil {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Revoking the billing profile is best effort: the subscription row is
	// already canceled, which alone decides entitlement.
	if err := u.profileRepo.UpdateStatus(ctx, profile.ID, subscription.ProfileRevoked); err != nil {
		slog.WarnContext(ctx, "failed to revoke billing profile after cancellation",
			"store_id", profile.StoreID, "profile_id", profile.ID, "error", err)
	}

	u.audit.MustRecord(ctx, audit.Entry{
		Type:       eventSubscriptionCanceled,
		OccurredAt: &canceledAt,
		Context: map[string]any{
			"storeId": next.StoreID.String(),
		},
		Source: "billing",
	})
	return AckCanceled, nil
}

func (u *webhookUseCaseImpl) eventTime(t *time.Time) time.Time {
	if t != nil && !t.IsZero() {
		return *t
	}
	return u.clock.Now()
}

func (u *webhookUseCaseImpl) webhookMetadata(req reqdto.PaymentWebhookRequest) map[string]any {
	meta := map[string]any{"lastWebhookEvent": req.EventType}
	if req.Data.PaymentKey != nil {
		meta["lastPaymentKey"] = *req.Data.PaymentKey
	}
	if req.Data.OrderID != nil {
		meta["lastOrderId"] = *req.Data.OrderID
	}
	return meta
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
