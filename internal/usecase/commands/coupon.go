package commands

import (
	"context"

	"coupon-wallet-service/internal/domain/coupon"
	reqdto "coupon-wallet-service/internal/handler/dto/request"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/audit"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	eventCouponCreated     = "coupon.created"
	eventCouponApproved    = "coupon.approved"
	eventCouponRejected    = "coupon.rejected"
	eventCouponResubmitted = "coupon.resubmitted"
)

type CouponCommands interface {
	CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest, merchantID uuid.UUID) (uuid.UUID, error)
	DecideCoupon(ctx context.Context, couponID uuid.UUID, req reqdto.CouponDecisionRequest, decidedBy uuid.UUID) error
	ResubmitCoupon(ctx context.Context, couponID uuid.UUID, merchantID uuid.UUID) error
}

type couponUseCaseImpl struct {
	couponRepo CouponRepository
	storeRepo  StoreRepository
	audit      AuditRecorder
	clock      clock.Clock
}

func NewCouponCommands(
	couponRepo CouponRepository,
	storeRepo StoreRepository,
	recorder AuditRecorder,
	clk clock.Clock,
) CouponCommands {
	return &couponUseCaseImpl{
		couponRepo: couponRepo,
		storeRepo:  storeRepo,
		audit:      recorder,
		clock:      clk,
	}
}

// CreateCoupon registers a merchant-submitted coupon in pending approval.
// The coupon stays inactive until an admin approves it.
func (u *couponUseCaseImpl) CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest, merchantID uuid.UUID) (uuid.UUID, error) {
	store, err := u.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrStoreNotFound)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if store.MerchantID != merchantID {
		return uuid.Nil, errs.ErrStoreNotOwned
	}

	c, err := coupon.NewCoupon(req.StoreID, req.Code, req.DiscountType, req.DiscountValue, req.StartAt, req.EndAt, req.MaxRedemptions)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	id, err := u.couponRepo.Create(ctx, c)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, errs.ErrDuplicateCode)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.audit.MustRecord(ctx, audit.Entry{
		Type: eventCouponCreated,
		Context: map[string]any{
			"couponId":   id.String(),
			"storeId":    req.StoreID.String(),
			"merchantId": merchantID.String(),
			"code":       c.Code().String(),
		},
		Details: map[string]any{
			"discountType":  c.Discount().Type().String(),
			"discountValue": c.Discount().Value(),
		},
		Source: "coupon",
	})
	return id, nil
}

// DecideCoupon applies an admin approval decision. Approval flips the coupon
// active; rejection deactivates it and requires a reason.
func (u *couponUseCaseImpl) DecideCoupon(ctx context.Context, couponID uuid.UUID, req reqdto.CouponDecisionRequest, decidedBy uuid.UUID) error {
	snap, err := u.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrCouponNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	approval := foldApproval(snap)

	reviewer := decidedBy.String()
	decision, err := coupon.NewDecision(coupon.ApprovalStatus(req.Status), &reviewer, req.Reason, u.clock.Now())
	if err != nil {
		switch err {
		case coupon.ErrReasonRequired:
			return errs.Mark(err, errs.ErrReasonRequired)
		default:
			return errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	next := approval.Decide(decision)
	if err := u.couponRepo.UpdateApproval(ctx, couponID, next, next.Activates()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrCouponNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	eventType := eventCouponApproved
	details := map[string]any{}
	if decision.Status == coupon.ApprovalRejected {
		eventType = eventCouponRejected
		details["reason"] = decision.Reason
	}
	u.audit.MustRecord(ctx, audit.Entry{
		Type: eventType,
		Context: map[string]any{
			"couponId":  couponID.String(),
			"decidedBy": reviewer,
		},
		Details: details,
		Source:  "coupon",
	})
	return nil
}

// ResubmitCoupon puts a rejected coupon back into pending review. Only the
// owning merchant may resubmit.
func (u *couponUseCaseImpl) ResubmitCoupon(ctx context.Context, couponID uuid.UUID, merchantID uuid.UUID) error {
	snap, err := u.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrCouponNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	store, err := u.storeRepo.FindByID(ctx, snap.StoreID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrStoreNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if store.MerchantID != merchantID {
		return errs.ErrStoreNotOwned
	}

	approval := foldApproval(snap)

	submitter := merchantID.String()
	next, err := approval.Resubmit(&submitter, u.clock.Now())
	if err != nil {
		return errs.Mark(err, errs.ErrNotRejected)
	}

	if err := u.couponRepo.UpdateApproval(ctx, couponID, next, false); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.audit.MustRecord(ctx, audit.Entry{
		Type: eventCouponResubmitted,
		Context: map[string]any{
			"couponId":      couponID.String(),
			"resubmittedBy": submitter,
		},
		Source: "coupon",
	})
	return nil
}

// foldApproval derives the approval block from the stored row. Rows written
// before the review workflow carry no block: an active row is implicitly
// approved so the prior state lands in history on the next decision, anything
// else is implicitly pending.
func foldApproval(snap *shared.CouponSnapshot) coupon.Approval {
	if snap.Approval != nil {
		return *snap.Approval
	}
	if snap.IsActive {
		return coupon.Approval{Decision: coupon.Decision{Status: coupon.ApprovalApproved}}
	}
	return coupon.DefaultApproval()
}
