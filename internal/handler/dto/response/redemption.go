package response

import (
	"time"

	"coupon-wallet-service/internal/usecase/commands"

	"github.com/google/uuid"
)

type RedemptionResponse struct {
	WalletID   uuid.UUID `json:"walletId"`
	CouponID   uuid.UUID `json:"couponId"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

func FromRedeemResult(result *commands.RedeemResult) *RedemptionResponse {
	return &RedemptionResponse{
		WalletID:   result.WalletID,
		CouponID:   result.CouponID,
		RedeemedAt: result.RedeemedAt,
	}
}
