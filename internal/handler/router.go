package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coupon-wallet-service/internal/domain/user"
	"coupon-wallet-service/internal/handler/api"
	"coupon-wallet-service/internal/handler/middleware"
	"coupon-wallet-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	couponHandler *api.CouponHandler,
	walletHandler *api.WalletHandler,
	redemptionHandler *api.RedemptionHandler,
	webhookHandler *api.WebhookHandler,
	eventHandler *api.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, couponHandler, walletHandler, redemptionHandler, webhookHandler, eventHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	couponHandler *api.CouponHandler,
	walletHandler *api.WalletHandler,
	redemptionHandler *api.RedemptionHandler,
	webhookHandler *api.WebhookHandler,
	eventHandler *api.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Webhooks authenticate via the processor's keys in the payload, not
		// via user tokens.
		addRoutes(apiGroup.Group("/webhooks"), []route{
			{Method: http.MethodPost, Path: "/payment", Handler: webhookHandler.HandlePaymentWebhook},
		})

		coupons := apiGroup.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth())
		{
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "", Handler: couponHandler.CreateCoupon,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleMerchant)}},
				{Method: http.MethodGet, Path: "/:id", Handler: couponHandler.GetCoupon},
				{Method: http.MethodPost, Path: "/:id/claim", Handler: walletHandler.ClaimCoupon,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
				{Method: http.MethodPost, Path: "/:id/decision", Handler: couponHandler.DecideCoupon,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/resubmit", Handler: couponHandler.ResubmitCoupon,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleMerchant)}},
			})
		}

		wallets := apiGroup.Group("/wallets")
		wallets.Use(authMiddleware.RequireAuth())
		{
			addRoutes(wallets, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: walletHandler.GetWallet},
				{Method: http.MethodPost, Path: "/:id/qr", Handler: walletHandler.IssueQr,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
			})
		}

		redemptions := apiGroup.Group("/redemptions")
		redemptions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(redemptions, []route{
				{Method: http.MethodPost, Path: "", Handler: redemptionHandler.Redeem,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleMerchant)}},
			})
		}

		events := apiGroup.Group("/events")
		events.Use(authMiddleware.RequireAuth())
		{
			addRoutes(events, []route{
				{Method: http.MethodGet, Path: "", Handler: eventHandler.ListEvents,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
