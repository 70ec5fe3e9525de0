package response

import (
	"time"

	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DecisionResponse struct {
	Status    string     `json:"status"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	DecidedBy *string    `json:"decidedBy,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

type ApprovalResponse struct {
	DecisionResponse
	History []DecisionResponse `json:"history,omitempty"`
}

type CouponResponse struct {
	ID             uuid.UUID        `json:"id"`
	StoreID        uuid.UUID        `json:"storeId"`
	Code           string           `json:"code"`
	DiscountType   string           `json:"discountType"`
	DiscountValue  float64          `json:"discountValue"`
	StartAt        *time.Time       `json:"startAt,omitempty"`
	EndAt          *time.Time       `json:"endAt,omitempty"`
	MaxRedemptions *int32           `json:"maxRedemptions,omitempty"`
	RedeemedCount  int32            `json:"redeemedCount"`
	IsActive       bool             `json:"isActive"`
	Approval       ApprovalResponse `json:"approval"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type CouponCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromCouponView(view *queries.CouponView) (*CouponResponse, error) {
	var resp CouponResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
