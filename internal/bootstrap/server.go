package bootstrap

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/supplier-import/internal/application/imports"
	"github.com/mohammadpnp/supplier-import/internal/domain/assignment"
	"github.com/mohammadpnp/supplier-import/internal/domain/partner"
	"github.com/mohammadpnp/supplier-import/internal/domain/user"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/metrics"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/spreadsheet"
	httpecho "github.com/mohammadpnp/supplier-import/internal/interfaces/http/echo"
)

// Dependencies are the process-wide handles the HTTP server is assembled from.
type Dependencies struct {
	DB         *gorm.DB
	Pool       *pgxpool.Pool
	Locker     app.Locker
	Dispatcher app.InvitationDispatcher
	Registry   *prometheus.Registry
	Logger     *zap.Logger
}

// NewImportRegistry builds one engine per importable entity on top of the
// gorm stores.
func NewImportRegistry(cfg Config, db *gorm.DB, logger *zap.Logger) *app.Registry {
	reader := spreadsheet.NewReader()

	partners := app.NewEngine(reader, app.EngineConfig[partner.Partner]{
		Schema: partner.Schema(cfg.PhoneDefaultRegion),
		Fields: partner.Fields,
		Store:  repository.NewPartnerStore(db),
	}, logger)

	users := app.NewEngine(reader, app.EngineConfig[user.User]{
		Schema: user.Schema(cfg.PhoneDefaultRegion),
		Fields: user.Fields,
		Store:  repository.NewUserStore(db),
	}, logger)

	assignments := app.NewEngine(reader, app.EngineConfig[assignment.Assignment]{
		Schema:   assignment.Schema(),
		Fields:   assignment.Fields,
		Store:    repository.NewAssignmentStore(db),
		Resolver: repository.NewAssignmentReferences(db),
		Invite:   assignment.Invite,
	}, logger)

	return app.NewRegistry(partners, users, assignments)
}

func NewHTTPServer(cfg Config, deps Dependencies) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(httpecho.RequestLogger(logger.With(zap.String("component", "http"))))
	server.Use(middleware.BodyLimit(cfg.UploadLimit))

	registry := NewImportRegistry(cfg, deps.DB, logger)
	writer := spreadsheet.NewWriter()

	validateImport := app.NewValidateImport(registry, writer)
	runImport := app.NewRunImport(
		registry,
		deps.Locker,
		deps.Dispatcher,
		repository.NewImportRunRepository(deps.Pool),
		metrics.NewRecorder(deps.Registry),
		logger,
	)
	downloadTemplate := app.NewDownloadTemplate(registry, writer)
	importHandler := httpecho.NewImportHandler(validateImport, runImport, downloadTemplate)

	getImportRun := app.NewGetImportRun(repository.NewImportRunQueryRepository(deps.DB))
	runHandler := httpecho.NewRunHandler(getImportRun)

	httpecho.RegisterRoutes(server, importHandler, runHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})))

	return server
}
