//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/domain/user"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/handler/api"
	resdto "coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/internal/usecase/queries"
	"coupon-wallet-service/tests/common/httptest"
	commandsmock "coupon-wallet-service/tests/mock/commands"
	queriesmock "coupon-wallet-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WalletHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWalletCommands
	mockQueries  *queriesmock.MockWalletQueries
	handler      *api.WalletHandler

	userID uuid.UUID
}

func (s *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWalletCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockWalletQueries(s.mockCtrl)
	s.handler = api.NewWalletHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/coupons/:id/claim", authMiddleware, s.handler.ClaimCoupon)
	s.router.GET("/wallets/:id", authMiddleware, s.handler.GetWallet)
	s.router.POST("/wallets/:id/qr", authMiddleware, s.handler.IssueQr)
}

func (s *WalletHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWalletHandlerSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}

func (s *WalletHandlerTestSuite) TestClaimCoupon() {
	couponID := uuid.New()
	walletID := uuid.New()
	url := "/coupons/" + couponID.String() + "/claim"
	body := map[string]any{"walletId": walletID.String()}

	s.Run("successful claim returns 200", func() {
		claimedAt := time.Now()
		s.mockCommands.EXPECT().
			ClaimCoupon(gomock.Any(), couponID, walletID, s.userID).
			Return(&commands.ClaimResult{
				WalletID:   walletID,
				CouponID:   couponID,
				CouponCode: "SAVE500",
				Status:     wallet.StatusClaimed,
				ClaimedAt:  claimedAt,
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")

		var resp resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(walletID, resp.WalletID)
		s.Equal("claimed", resp.Status)
	})

	s.Run("entitlement denial returns 402 with feature and status", func() {
		s.mockCommands.EXPECT().
			ClaimCoupon(gomock.Any(), couponID, walletID, s.userID).
			Return(nil, commands.NewFeatureDeniedError("coupon.claim", subscription.StatusGrace))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		s.Equal(http.StatusPaymentRequired, w.Code, w.Body.String())

		var payload map[string]any
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &payload))
		s.Equal("coupon.claim", payload["feature"])
		s.Equal("grace", payload["subscriptionStatus"])
	})

	s.Run("eligibility errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "coupon not found", err: errs.ErrCouponNotFound, expectCode: http.StatusNotFound},
			{name: "coupon inactive", err: errs.ErrCouponInactive, expectCode: http.StatusUnprocessableEntity},
			{name: "coupon not started", err: errs.ErrCouponNotStarted, expectCode: http.StatusUnprocessableEntity},
			{name: "coupon expired", err: errs.ErrCouponExpired, expectCode: http.StatusUnprocessableEntity},
			{name: "coupon exhausted", err: errs.ErrCouponExhausted, expectCode: http.StatusUnprocessableEntity},
			{name: "wallet not found", err: errs.ErrWalletNotFound, expectCode: http.StatusNotFound},
			{name: "wallet not owned", err: errs.ErrWalletNotOwned, expectCode: http.StatusForbidden},
			{name: "wallet conflict", err: errs.ErrWalletConflict, expectCode: http.StatusConflict},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					ClaimCoupon(gomock.Any(), couponID, walletID, s.userID).
					Return(nil, tc.err)

				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				s.Equal(tc.expectCode, w.Code, w.Body.String())
			})
		}
	})

	s.Run("missing walletId returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "token")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *WalletHandlerTestSuite) TestIssueQr() {
	walletID := uuid.New()
	url := "/wallets/" + walletID.String() + "/qr"

	s.Run("successful issuance returns 201 with the clear token", func() {
		expiresAt := time.Now().Add(2 * time.Minute)
		tokenID := uuid.New()
		s.mockCommands.EXPECT().
			IssueQr(gomock.Any(), walletID, s.userID).
			Return(&commands.IssueQrResult{TokenID: tokenID, Token: "opaque-token", ExpiresAt: expiresAt}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var resp resdto.QrTokenResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(tokenID, resp.TokenID)
		s.Equal("opaque-token", resp.Token)
	})

	s.Run("unclaimed wallet returns 422", func() {
		s.mockCommands.EXPECT().
			IssueQr(gomock.Any(), walletID, s.userID).
			Return(nil, errs.ErrWalletNotClaimed)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "no claimed coupon")
	})

	s.Run("concurrent state change returns 409", func() {
		s.mockCommands.EXPECT().
			IssueQr(gomock.Any(), walletID, s.userID).
			Return(nil, errs.ErrWalletConflict)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *WalletHandlerTestSuite) TestGetWallet() {
	walletID := uuid.New()
	url := "/wallets/" + walletID.String()

	s.Run("owner reads own wallet", func() {
		view := &queries.WalletView{ID: walletID, UserID: s.userID, Status: "claimed"}
		s.mockQueries.EXPECT().
			GetWallet(gomock.Any(), walletID, s.userID, user.RoleCustomer).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var resp resdto.WalletResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(walletID, resp.ID)
		s.Equal("claimed", resp.Status)
	})

	s.Run("someone else's wallet returns 403", func() {
		s.mockQueries.EXPECT().
			GetWallet(gomock.Any(), walletID, s.userID, user.RoleCustomer).
			Return(nil, errs.ErrWalletNotOwned)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("unknown wallet returns 404", func() {
		s.mockQueries.EXPECT().
			GetWallet(gomock.Any(), walletID, s.userID, user.RoleCustomer).
			Return(nil, errs.ErrWalletNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusNotFound, w.Code)
	})
}
