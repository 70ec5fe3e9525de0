package api

import (
	"errors"
	"net/http"

	reqdto "coupon-wallet-service/internal/handler/dto/request"
	resdto "coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RedemptionHandler struct {
	redemptionCommands commands.RedemptionCommands
}

func NewRedemptionHandler(redemptionCommands commands.RedemptionCommands) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionCommands: redemptionCommands,
	}
}

// @Summary Redeem token
// @Description Redeem a presented QR token at the point of sale
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedeemRequest true "Token"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /redemptions [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.redemptionCommands.Redeem(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		case errors.Is(err, errs.ErrTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Token has expired"})
		case errors.Is(err, errs.ErrTokenRedeemed):
			c.JSON(http.StatusConflict, gin.H{"error": "Token has already been redeemed"})
		case errors.Is(err, errs.ErrCouponExhausted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon redemption limit reached"})
		case errors.Is(err, errs.ErrWalletConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Wallet state changed, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}
