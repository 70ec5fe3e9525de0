//go:build e2e

package wallet_test

import (
	"net/http"
	"testing"
	"time"

	"coupon-wallet-service/internal/domain/user"
	"coupon-wallet-service/internal/handler/dto/request"
	"coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/tests/common/authtest"
	"coupon-wallet-service/tests/common/dbtest"
	"coupon-wallet-service/tests/common/httptest"
	"coupon-wallet-service/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WalletSuite struct {
	e2e.SharedSuite
}

func (s *WalletSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestWalletSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(WalletSuite))
}

// claimFixture creates a merchant store with an active subscription, an
// approved coupon, and a customer with an empty wallet.
type claimFixture struct {
	StoreID       uuid.UUID
	CouponID      uuid.UUID
	CustomerID    uuid.UUID
	WalletID      uuid.UUID
	CustomerToken string
	MerchantToken string
}

func (s *WalletSuite) newClaimFixture(code string, withSubscription bool) claimFixture {
	t := s.T()
	jwtHelper := authtest.NewJWTHelper(s.Config.JWT)

	merchantID := dbtest.CreateTestUser(t, s.DB, "merchant@example.com", string(user.RoleMerchant))
	storeID := dbtest.CreateTestStore(t, s.DB, merchantID, "Test Store")
	if withSubscription {
		dbtest.CreateActiveSubscription(t, s.DB, storeID)
	}
	couponID := dbtest.CreateApprovedCoupon(t, s.DB, storeID, code, nil)

	customerID := dbtest.CreateTestUser(t, s.DB, "customer@example.com", string(user.RoleCustomer))
	walletID := dbtest.CreateTestWallet(t, s.DB, customerID)

	return claimFixture{
		StoreID:       storeID,
		CouponID:      couponID,
		CustomerID:    customerID,
		WalletID:      walletID,
		CustomerToken: jwtHelper.GenerateToken(t, customerID, user.RoleCustomer),
		MerchantToken: jwtHelper.GenerateToken(t, merchantID, user.RoleMerchant),
	}
}

func (s *WalletSuite) claim(f claimFixture) response.ClaimResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost,
		"/api/coupons/"+f.CouponID.String()+"/claim",
		request.ClaimCouponRequest{WalletID: f.WalletID}, f.CustomerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var claimed response.ClaimResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &claimed))
	return claimed
}

func (s *WalletSuite) issueQr(f claimFixture) response.QrTokenResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost,
		"/api/wallets/"+f.WalletID.String()+"/qr", nil, f.CustomerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var qr response.QrTokenResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &qr))
	return qr
}

// =============================================================================
// TestClaimCoupon - Claim API tests
// =============================================================================

func (s *WalletSuite) TestClaimCoupon() {
	s.Run("Normal case: Customer claims an approved coupon into own wallet", func() {
		t := s.T()

		f := s.newClaimFixture("SAVE500", true)
		claimed := s.claim(f)

		require.Equal(t, f.WalletID, claimed.WalletID)
		require.Equal(t, f.CouponID, claimed.CouponID)
		require.Equal(t, "SAVE500", claimed.CouponCode)
		require.Equal(t, "claimed", claimed.Status)

		// ウォレット照会でクーポン状態が反映されていること
		gw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/wallets/"+f.WalletID.String(), nil, f.CustomerToken)
		require.Equal(t, http.StatusOK, gw.Code)

		var wallet response.WalletResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &wallet))
		require.Equal(t, "claimed", wallet.Status)
		require.NotNil(t, wallet.CouponState)
		require.Equal(t, f.CouponID, wallet.CouponState.CouponID)
	})

	s.Run("Error case: Store without subscription is denied with 402", func() {
		t := s.T()

		f := s.newClaimFixture("NOSUB", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/coupons/"+f.CouponID.String()+"/claim",
			request.ClaimCouponRequest{WalletID: f.WalletID}, f.CustomerToken)
		require.Equal(t, http.StatusPaymentRequired, w.Code, w.Body.String())

		var body map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Equal(t, "coupon.claim", body["feature"])
		require.Equal(t, "inactive", body["subscriptionStatus"])
	})

	s.Run("Error case: Claiming into someone else's wallet fails with 403", func() {
		t := s.T()

		f := s.newClaimFixture("NOTYOURS", true)
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", string(user.RoleCustomer))
		otherToken := jwtHelper.GenerateToken(t, otherID, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/coupons/"+f.CouponID.String()+"/claim",
			request.ClaimCouponRequest{WalletID: f.WalletID}, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: Expired access token is rejected with 401", func() {
		t := s.T()

		f := s.newClaimFixture("STALE", true)
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		expired := jwtHelper.CreateExpiredToken(t, f.CustomerID, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/coupons/"+f.CouponID.String()+"/claim",
			request.ClaimCouponRequest{WalletID: f.WalletID}, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("Normal case: A new claim overwrites the previous coupon binding", func() {
		t := s.T()

		f := s.newClaimFixture("ONCE", true)
		s.claim(f)

		secondCoupon := dbtest.CreateApprovedCoupon(t, s.DB, f.StoreID, "TWICE", nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/coupons/"+secondCoupon.String()+"/claim",
			request.ClaimCouponRequest{WalletID: f.WalletID}, f.CustomerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/wallets/"+f.WalletID.String(), nil, f.CustomerToken)
		var wallet response.WalletResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &wallet))
		require.NotNil(t, wallet.CouponState)
		require.Equal(t, secondCoupon, wallet.CouponState.CouponID)
		require.Equal(t, "TWICE", wallet.CouponState.CouponCode)
	})

	s.Run("Error case: Unknown coupon yields 404", func() {
		t := s.T()

		f := s.newClaimFixture("EXISTS", true)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/coupons/"+uuid.New().String()+"/claim",
			request.ClaimCouponRequest{WalletID: f.WalletID}, f.CustomerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestIssueQr - QR token issuance API tests
// =============================================================================

func (s *WalletSuite) TestIssueQr() {
	s.Run("Normal case: Claimed wallet gets a single-use token", func() {
		t := s.T()

		f := s.newClaimFixture("QRME", true)
		s.claim(f)
		qr := s.issueQr(f)

		require.NotEqual(t, uuid.Nil, qr.TokenID)
		require.NotEmpty(t, qr.Token)
		require.True(t, qr.ExpiresAt.After(time.Now()), "token must expire in the future")
	})

	s.Run("Normal case: Re-issuing invalidates the previous token", func() {
		t := s.T()

		f := s.newClaimFixture("REISSUE", true)
		s.claim(f)
		first := s.issueQr(f)
		second := s.issueQr(f)
		require.NotEqual(t, first.Token, second.Token)

		// 古いトークンでの償却は失効済みとして拒否される
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions",
			request.RedeemRequest{Token: first.Token}, f.MerchantToken)
		require.Equal(t, http.StatusGone, w.Code, w.Body.String())
	})

	s.Run("Error case: Issuing for an unclaimed wallet fails with 422", func() {
		t := s.T()

		f := s.newClaimFixture("NOCLAIM", true)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/wallets/"+f.WalletID.String()+"/qr", nil, f.CustomerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestRedeem - Redemption API tests
// =============================================================================

func (s *WalletSuite) TestRedeem() {
	s.Run("Normal case: Full lifecycle claim -> qr -> redeem", func() {
		t := s.T()

		f := s.newClaimFixture("LIFECYCLE", true)
		s.claim(f)
		qr := s.issueQr(f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions",
			request.RedeemRequest{Token: qr.Token}, f.MerchantToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var redeemed response.RedemptionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &redeemed))
		require.Equal(t, f.WalletID, redeemed.WalletID)
		require.Equal(t, f.CouponID, redeemed.CouponID)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/wallets/"+f.WalletID.String(), nil, f.CustomerToken)
		var wallet response.WalletResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &wallet))
		require.Equal(t, "redeemed", wallet.Status)
		require.NotNil(t, wallet.CouponState)
		require.NotNil(t, wallet.CouponState.RedeemedAt)
		require.Nil(t, wallet.CouponState.QrTokenID)
	})

	s.Run("Error case: Same token cannot be redeemed twice", func() {
		t := s.T()

		f := s.newClaimFixture("DOUBLE", true)
		s.claim(f)
		qr := s.issueQr(f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions",
			request.RedeemRequest{Token: qr.Token}, f.MerchantToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions",
			request.RedeemRequest{Token: qr.Token}, f.MerchantToken)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("Error case: Unknown token yields 404", func() {
		t := s.T()

		f := s.newClaimFixture("GHOST", true)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions",
			request.RedeemRequest{Token: "no-such-token"}, f.MerchantToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: Exhausted coupon rejects redemption with 422", func() {
		t := s.T()

		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		merchantID := dbtest.CreateTestUser(t, s.DB, "merchant@example.com", string(user.RoleMerchant))
		storeID := dbtest.CreateTestStore(t, s.DB, merchantID, "Test Store")
		dbtest.CreateActiveSubscription(t, s.DB, storeID)

		// 上限1回のクーポンを2人が取得し、先勝ちで枯渇させる
		limit := int32(1)
		couponID := dbtest.CreateApprovedCoupon(t, s.DB, storeID, "LIMITED", &limit)
		merchantToken := jwtHelper.GenerateToken(t, merchantID, user.RoleMerchant)

		redeemFor := func(email string) *request.RedeemRequest {
			customerID := dbtest.CreateTestUser(t, s.DB, email, string(user.RoleCustomer))
			walletID := dbtest.CreateTestWallet(t, s.DB, customerID)
			token := jwtHelper.GenerateToken(t, customerID, user.RoleCustomer)

			cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
				"/api/coupons/"+couponID.String()+"/claim",
				request.ClaimCouponRequest{WalletID: walletID}, token)
			require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())

			qw := httptest.PerformRequest(t, s.Router, http.MethodPost,
				"/api/wallets/"+walletID.String()+"/qr", nil, token)
			require.Equal(t, http.StatusCreated, qw.Code, qw.Body.String())

			var qr response.QrTokenResponse
			require.NoError(t, httptest.DecodeResponseBody(t, qw.Body, &qr))
			return &request.RedeemRequest{Token: qr.Token}
		}

		first := redeemFor("first@example.com")
		second := redeemFor("second@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions", first, merchantToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/redemptions", second, merchantToken)
		require.Equal(t, http.StatusUnprocessableEntity, w2.Code, w2.Body.String())
	})
}
