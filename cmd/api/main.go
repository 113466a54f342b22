package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/buen-sabor-api/internal/application/catalog"
	"github.com/jhoicas/buen-sabor-api/internal/application/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/internal/application/payment"
	dominv "github.com/jhoicas/buen-sabor-api/internal/domain/inventory"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/memory"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/mercadopago"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/buen-sabor-api/internal/infrastructure/rabbitmq"
	infraredis "github.com/jhoicas/buen-sabor-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/buen-sabor-api/internal/interfaces/http"
	"github.com/jhoicas/buen-sabor-api/pkg/config"
	"github.com/jhoicas/buen-sabor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	lookup := catalog.NewLookup(
		itemRepo,
		postgres.NewManufacturedItemRepository(pool),
		postgres.NewPromotionRepository(pool),
	)
	ledger := inventory.NewStockLedger(lookup, dominv.ParseReservePolicy(cfg.Orders.ReservePolicy), log.Component("stock_ledger"))

	orderDeps := ordering.OrderUseCaseDeps{
		TxRunner:       txRunner,
		Catalog:        lookup,
		Expander:       ordering.NewPromotionExpander(lookup),
		Ledger:         ledger,
		Estimator:      ordering.NewEstimator(lookup, userRepo, cfg.Orders.CookRole, cfg.Orders.DeliveryOverheadMinutes),
		Orders:         orderRepo,
		Addresses:      addressRepo,
		PickupDiscount: cfg.Orders.PickupDiscount,
		Log:            log.Component("orders"),
	}

	// Idempotencia: Redis si está configurado, si no un mapa en proceso (una sola réplica).
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		orderDeps.Idempotency = infraredis.NewIdempotencyStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío, claves de idempotencia en memoria")
		orderDeps.Idempotency = memory.NewIdempotencyStore(24 * time.Hour)
	}

	// Eventos: sin RabbitMQ el pedido se procesa igual y no se publica nada.
	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ, log.Component("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer publisher.Close()
		orderDeps.Events = publisher
	}
	orderUC := ordering.NewOrderUseCase(orderDeps)

	var gateway payment.Gateway
	if cfg.MercadoPago.AccessToken != "" {
		gateway = mercadopago.NewClient(cfg.MercadoPago, log.Component("mercadopago"))
	} else {
		log.Warn().Msg("MP_ACCESS_TOKEN vacío, cobro con Mercado Pago deshabilitado")
	}
	paymentUC := payment.NewUseCase(orderRepo, lookup, gateway, log.Component("payments"))

	purchaseUC := inventory.NewPurchaseUseCase(txRunner, ledger, log.Component("purchases"))
	lowStockUC := inventory.NewLowStockUseCase(itemRepo)
	journalUC := inventory.NewJournalUseCase(movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "El Buen Sabor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:    orderUC,
		PaymentUC:  paymentUC,
		PurchaseUC: purchaseUC,
		LowStockUC: lowStockUC,
		JournalUC:  journalUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
