package api

import (
	"errors"
	"net/http"

	reqdto "coupon-wallet-service/internal/handler/dto/request"
	resdto "coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/internal/handler/middleware"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WalletHandler struct {
	walletCommands commands.WalletCommands
	walletQueries  queries.WalletQueries
}

func NewWalletHandler(walletCommands commands.WalletCommands, walletQueries queries.WalletQueries) *WalletHandler {
	return &WalletHandler{
		walletCommands: walletCommands,
		walletQueries:  walletQueries,
	}
}

// @Summary Claim coupon
// @Description Claim a coupon into the user's wallet
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.ClaimCouponRequest true "Claim request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /coupons/{id}/claim [post]
func (h *WalletHandler) ClaimCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	var req reqdto.ClaimCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.walletCommands.ClaimCoupon(c.Request.Context(), couponID, req.WalletID, userID)
	if err != nil {
		var denied *commands.FeatureDeniedError
		switch {
		case errors.As(err, &denied):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":              "Store subscription does not allow claims",
				"feature":            denied.Feature,
				"subscriptionStatus": denied.Status.String(),
			})
		case errors.Is(err, errs.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		case errors.Is(err, errs.ErrCouponInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not active"})
		case errors.Is(err, errs.ErrCouponNotStarted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not yet valid"})
		case errors.Is(err, errs.ErrCouponExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon has expired"})
		case errors.Is(err, errs.ErrCouponExhausted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon redemption limit reached"})
		case errors.Is(err, errs.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		case errors.Is(err, errs.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, errs.ErrWalletNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Wallet does not belong to user"})
		case errors.Is(err, errs.ErrWalletConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Wallet state changed, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Issue QR token
// @Description Materialize the claimed coupon as a short-lived redemption token
// @Tags wallets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Wallet ID"
// @Success 201 {object} resdto.QrTokenResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /wallets/{id}/qr [post]
func (h *WalletHandler) IssueQr(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet ID"})
		return
	}

	result, err := h.walletCommands.IssueQr(c.Request.Context(), walletID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, errs.ErrWalletNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Wallet does not belong to user"})
		case errors.Is(err, errs.ErrWalletNotClaimed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Wallet has no claimed coupon"})
		case errors.Is(err, errs.ErrWalletConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Wallet state changed, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromIssueQrResult(result))
}

// @Summary Get wallet
// @Description Get the wallet projection with its coupon binding
// @Tags wallets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Wallet ID"
// @Success 200 {object} resdto.WalletResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /wallets/{id} [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet ID"})
		return
	}

	view, err := h.walletQueries.GetWallet(c.Request.Context(), walletID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, errs.ErrWalletNotOwned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Wallet does not belong to user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	resp, err := resdto.FromWalletView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
