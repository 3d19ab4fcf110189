package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/backoffice-api/docs"
	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/customers"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/receivables"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
)

const docsFile = "./docs/swagger.json"

// storage agrupa los repositorios del backend elegido.
type storage struct {
	txRunner       repository.TxRunner
	tenants        repository.TenantRepository
	users          repository.UserRepository
	memberships    repository.MembershipRepository
	passwordResets repository.PasswordResetRepository
	customers      repository.CustomerRepository
	products       repository.ProductRepository
	movements      repository.StockMovementRepository
	sales          repository.SaleRepository
	receivables    repository.ReceivableRepository
	dashboard      repository.DashboardRepository
	healthCheck    func(ctx context.Context) error
	close          func()
}

// @title        Backoffice API
// @version      1.0
// @description  Inventario, ventas y cuentas por cobrar multi-tenant.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	authUC := auth.NewAuthUseCase(st.txRunner, st.users, st.memberships, st.passwordResets, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		AppURL:         cfg.App.URL,
		ExposeResetURL: !cfg.App.IsProduction(),
	})

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		SettingsUC:   settings.NewSettingsUseCase(st.tenants, st.users, st.memberships),
		CustomerUC:   customers.NewCustomerUseCase(st.customers),
		ProductUC:    inventory.NewProductUseCase(st.txRunner, st.products, m),
		MovementUC:   inventory.NewMovementUseCase(st.txRunner, st.movements, m),
		ExportUC:     inventory.NewExportUseCase(st.products, xlsx.NewInventoryExporter(cfg.App.Locale)),
		SaleUC:       sales.NewSaleUseCase(st.txRunner, st.sales, m),
		ReceivableUC: receivables.NewReceivableUseCase(st.txRunner, st.receivables, m),
		DashboardUC:  appanalytics.NewDashboardUseCase(st.dashboard, st.products, st.receivables),
		JWTSecret:    cfg.JWT.Secret,
	}

	// Swagger UI en local: http://localhost:<port>/docs
	docs := ""
	if _, err := os.Stat(docsFile); err == nil {
		docs = docsFile
	} else {
		log.Warn().Str("file", docsFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:           cfg.App.Name,
		Logger:         log,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		DocsFile:       docs,
		HealthCheck:    st.healthCheck,
		Deps:           deps,
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

// openStorage conecta el backend configurado. memory sirve para demos y desarrollo sin base.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		return &storage{
			txRunner:       store,
			tenants:        store.Tenants(),
			users:          store.Users(),
			memberships:    store.Memberships(),
			passwordResets: store.PasswordResets(),
			customers:      store.Customers(),
			products:       store.Products(),
			movements:      store.Movements(),
			sales:          store.Sales(),
			receivables:    store.Receivables(),
			dashboard:      store.Dashboard(),
			close:          func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:       postgres.NewTxRunner(pool),
		tenants:        postgres.NewTenantRepository(pool),
		users:          postgres.NewUserRepository(pool),
		memberships:    postgres.NewMembershipRepository(pool),
		passwordResets: postgres.NewPasswordResetRepository(pool),
		customers:      postgres.NewCustomerRepository(pool),
		products:       postgres.NewProductRepository(pool),
		movements:      postgres.NewStockMovementRepository(pool),
		sales:          postgres.NewSaleRepository(pool),
		receivables:    postgres.NewReceivableRepository(pool),
		dashboard:      postgres.NewDashboardRepository(pool),
		healthCheck:    pool.Ping,
		close:          pool.Close,
	}, nil
}
