package components

import (
	"coupon-wallet-service/internal/infra/readstore"
	repo_impl "coupon-wallet-service/internal/infra/repository"
	"coupon-wallet-service/internal/usecase/audit"
	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewCouponRepository,
			fx.As(new(commands.CouponRepository)),
		),
		fx.Annotate(
			repo_impl.NewWalletRepository,
			fx.As(new(commands.WalletRepository)),
		),
		fx.Annotate(
			repo_impl.NewQrTokenRepository,
			fx.As(new(commands.TokenRepository)),
		),
		fx.Annotate(
			repo_impl.NewStoreRepository,
			fx.As(new(commands.StoreRepository)),
		),
		fx.Annotate(
			repo_impl.NewSubscriptionRepository,
			fx.As(new(commands.SubscriptionRepository)),
		),
		fx.Annotate(
			repo_impl.NewBillingProfileRepository,
			fx.As(new(commands.BillingProfileRepository)),
		),
		fx.Annotate(
			repo_impl.NewPlanRepository,
			fx.As(new(commands.PlanRepository)),
		),
		fx.Annotate(
			repo_impl.NewEventRepository,
			fx.As(new(audit.EventRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			readstore.NewWalletReadStore,
			fx.As(new(queries.WalletReadStore)),
		),
		fx.Annotate(
			readstore.NewEventReadStore,
			fx.As(new(queries.EventReadStore)),
		),
	),
)
