package request

import "github.com/google/uuid"

type ClaimCouponRequest struct {
	WalletID uuid.UUID `json:"walletId" binding:"required"`
}

type RedeemRequest struct {
	Token string `json:"token" binding:"required"`
}
