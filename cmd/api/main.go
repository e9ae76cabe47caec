package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/textil-erp/internal/application/auth"
	"github.com/jhoicas/textil-erp/internal/application/catalog"
	"github.com/jhoicas/textil-erp/internal/application/documents"
	"github.com/jhoicas/textil-erp/internal/application/inventory"
	"github.com/jhoicas/textil-erp/internal/application/ports"
	"github.com/jhoicas/textil-erp/internal/application/production"
	"github.com/jhoicas/textil-erp/internal/application/purchasing"
	"github.com/jhoicas/textil-erp/internal/application/sales"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/internal/infrastructure/kafka"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
	"github.com/jhoicas/textil-erp/internal/infrastructure/metrics"
	"github.com/jhoicas/textil-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/textil-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/textil-erp/internal/interfaces/http"
	"github.com/jhoicas/textil-erp/pkg/config"
	"github.com/jhoicas/textil-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos repository.Repos
		tx    repository.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos, tx = store.Repos(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.MigrateOnStart {
			n, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Int("applied", n).Msg("migraciones al día")
		}
		repos, tx = postgres.NewRepos(pool), postgres.NewTxRunner(pool)
	}

	var events ports.EventPublisher = ports.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		pub, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ClientID, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor Kafka")
		}
		defer pub.Close()
		events = pub
	}

	m := metrics.New()
	appLog := log.Zerolog()

	ledger := inventory.NewLedger(repos, tx, m, log.Component("inventory"))
	purchaseUC := purchasing.NewUseCase(repos, tx, ledger, events, m, log.Component("purchasing"))
	salesUC := sales.NewUseCase(repos, tx, events, m, log.Component("sales"))
	productionUC := production.NewUseCase(repos, tx, ledger, events, m, log.Component("production"))
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(appLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Metrics(m))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		MaterialUC:     catalog.NewMaterialUseCase(repos.Materials, repos.Suppliers),
		ProductUC:      catalog.NewProductUseCase(repos.Products),
		SupplierUC:     catalog.NewSupplierUseCase(repos.Suppliers),
		CustomerUC:     catalog.NewCustomerUseCase(repos.Customers),
		Ledger:         ledger,
		PurchaseUC:     purchaseUC,
		SalesUC:        salesUC,
		ProductionUC:   productionUC,
		DocumentsUC:    documents.NewUseCase(repos, pdf.NewMarotoRenderer(), cfg.App.Name),
		JWTSecret:      cfg.JWT.Secret,
		Log:            appLog,
		MetricsHandler: m.Handler(),
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
