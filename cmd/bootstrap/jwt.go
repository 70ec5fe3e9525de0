package bootstrap

import (
	"time"

	"coupon-wallet-service/internal/pkg/config"
	"coupon-wallet-service/internal/pkg/jwt"

	"go.uber.org/fx"
)

// Tokens are minted by the external auth service; this service only
// validates them, so the duration matters only for test token generation.
const accessTokenDuration = 15 * time.Minute

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, accessTokenDuration)
}
