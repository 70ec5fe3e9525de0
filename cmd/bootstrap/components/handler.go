package components

import (
	"coupon-wallet-service/internal/handler"
	"coupon-wallet-service/internal/handler/api"
	"coupon-wallet-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCouponHandler,
		api.NewWalletHandler,
		api.NewRedemptionHandler,
		api.NewWebhookHandler,
		api.NewEventHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
