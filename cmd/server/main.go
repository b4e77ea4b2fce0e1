package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/malshehri/groupbuy-checkout/internal/config"
	"github.com/malshehri/groupbuy-checkout/internal/database"
	"github.com/malshehri/groupbuy-checkout/internal/gateway"
	"github.com/malshehri/groupbuy-checkout/internal/handler"
	"github.com/malshehri/groupbuy-checkout/internal/middleware"
	"github.com/malshehri/groupbuy-checkout/internal/repository"
	"github.com/malshehri/groupbuy-checkout/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	if err := setupAPIRoutes(ctx, router, pool, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to wire checkout services")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(ctx context.Context, router *gin.Engine, pool *pgxpool.Pool, cfg *config.Config) error {
	productRepo := repository.NewProductRepository(pool)
	chargeRepo := repository.NewChargeRepository(pool)
	kvRepo := repository.NewKVRepository(pool)

	products, err := productRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("products", len(products)).Msg("price catalog loaded")

	pricing := service.NewPricingService(products, cfg.DefaultPrice, cfg.Currency)
	registry := service.NewRegistryService()

	gws := gateway.NewDefaultGateways(cfg.GatewayLatency)
	adapters := []gateway.Adapter{
		gateway.NewCardAdapter(gws.Moyasar),
		gateway.NewPlatformWalletAdapter(gws.ApplePay, gws.GooglePay),
		gateway.NewCarrierWalletAdapter(gws.STCPayIOS, gws.STCPayAndroid),
		gateway.NewBNPLAdapter(gws.Tabby),
	}

	checkoutSvc, err := service.NewCheckoutService(pricing, registry, adapters, chargeRepo, cfg.ChargeTimeout)
	if err != nil {
		return err
	}
	chargeSvc := service.NewChargeService(chargeRepo)
	pmSvc := service.NewPaymentMethodService(kvRepo)

	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc, cfg.DefaultDiscount)
	methodHandler := handler.NewMethodHandler(registry, pricing, cfg.DefaultDiscount)
	chargeHandler := handler.NewChargeHandler(chargeSvc)
	pmHandler := handler.NewPaymentMethodHandler(pmSvc)

	api := router.Group("/api/v1")
	{
		api.POST("/checkout", checkoutHandler.Checkout)
		api.GET("/payment-methods", methodHandler.AvailableMethods)
		api.GET("/products/:id/price", methodHandler.Price)
		api.GET("/charges", chargeHandler.List)
		api.GET("/charges/:transaction_id", chargeHandler.Get)
		api.GET("/metrics", chargeHandler.Stats)
		api.PUT("/users/:user_id/payment-method", pmHandler.Save)
		api.GET("/users/:user_id/payment-method", pmHandler.Load)
	}

	return nil
}
