package response

import (
	"time"

	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CouponStateResponse struct {
	CouponID         uuid.UUID  `json:"couponId"`
	CouponCode       string     `json:"couponCode"`
	Status           string     `json:"status"`
	ClaimedAt        time.Time  `json:"claimedAt"`
	QrTokenID        *uuid.UUID `json:"qrTokenId,omitempty"`
	QrTokenExpiresAt *time.Time `json:"qrTokenExpiresAt,omitempty"`
	RedeemedAt       *time.Time `json:"redeemedAt,omitempty"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
}

type WalletResponse struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"userId"`
	Status      string               `json:"status"`
	CouponState *CouponStateResponse `json:"couponState,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type ClaimResponse struct {
	WalletID   uuid.UUID `json:"walletId"`
	CouponID   uuid.UUID `json:"couponId"`
	CouponCode string    `json:"couponCode"`
	Status     string    `json:"status"`
	ClaimedAt  time.Time `json:"claimedAt"`
}

// QrTokenResponse carries the clear token value; this is the only place it
// ever leaves the service.
type QrTokenResponse struct {
	TokenID   uuid.UUID `json:"tokenId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromWalletView(view *queries.WalletView) (*WalletResponse, error) {
	var resp WalletResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromClaimResult(result *commands.ClaimResult) *ClaimResponse {
	return &ClaimResponse{
		WalletID:   result.WalletID,
		CouponID:   result.CouponID,
		CouponCode: result.CouponCode,
		Status:     result.Status.String(),
		ClaimedAt:  result.ClaimedAt,
	}
}

func FromIssueQrResult(result *commands.IssueQrResult) *QrTokenResponse {
	return &QrTokenResponse{
		TokenID:   result.TokenID,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}
