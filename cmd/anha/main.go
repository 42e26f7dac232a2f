package main

import (
	"context"
	"log/slog"
	"os"

	"anha/config"
	"anha/internal/delivery"
	"anha/internal/delivery/http"
	"anha/internal/delivery/http/middleware"
	"anha/internal/delivery/http/router/handler"
	"anha/internal/delivery/worker"
	"anha/internal/domain/service"
	"anha/internal/infra/auth"
	"anha/internal/infra/bank"
	"anha/internal/infra/geo"
	logs "anha/internal/infra/log"
	"anha/internal/infra/persistence/postgres"
	"anha/internal/infra/qrcode"
	"anha/internal/infra/upload"
	"anha/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewProductRepository,
			postgres.NewCartRepository,
			postgres.NewOrderRepository,
			postgres.NewUserRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			geo.NewDirectoryClient,
			newPaymentQRService,
			newStatementService,
			newImageStore,
		),
	)
}

// newPaymentQRService creates the transfer QR renderer when a receiving
// account is configured. Bank transfer stays disabled otherwise.
func newPaymentQRService(cfg *config.Config) (service.PaymentQRService, error) {
	if cfg.Bank == nil || cfg.Bank.BankBin == "" || cfg.Bank.AccountNumber == "" {
		return nil, nil
	}

	return qrcode.NewPaymentQRService(cfg)
}

// newStatementService creates the bank statement client when a statement API
// is configured.
func newStatementService(cfg *config.Config) (service.StatementService, error) {
	if cfg.Bank == nil || cfg.Bank.StatementURL == "" {
		return nil, nil
	}

	return bank.NewStatementClient(cfg)
}

// newImageStore creates the local image store when an upload directory is
// configured.
func newImageStore(cfg *config.Config) (service.ImageStore, error) {
	if cfg.Upload == nil || cfg.Upload.Dir == "" {
		return nil, nil
	}

	return upload.NewLocalStore(cfg)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProductService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewUserService,
			impl.NewPaymentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewUploadHandler,
			handler.NewGeoHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewPaymentPoller,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
