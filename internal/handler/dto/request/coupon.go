package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateCouponRequest struct {
	StoreID        uuid.UUID  `json:"storeId" binding:"required"`
	Code           string     `json:"code" binding:"required"`
	DiscountType   string     `json:"discountType" binding:"required,oneof=fixed percentage"`
	DiscountValue  float64    `json:"discountValue" binding:"min=0"`
	StartAt        *time.Time `json:"startAt,omitempty"`
	EndAt          *time.Time `json:"endAt,omitempty"`
	MaxRedemptions *int32     `json:"maxRedemptions,omitempty" binding:"omitempty,min=1"`
}

type CouponDecisionRequest struct {
	Status string  `json:"status" binding:"required,oneof=approved rejected"`
	Reason *string `json:"reason,omitempty"`
}
