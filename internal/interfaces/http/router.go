package http

import (
	"errors"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/internal/domain/access"
	"github.com/jhoicas/Distribucion-api/pkg/logger"
)

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	Log         *logger.Logger
	Observer    requestObserver // nil = sin métricas HTTP
}

// NewApp crea la app Fiber con los middlewares comunes: recover, request id, CORS y log de peticiones.
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	origins := strings.TrimSpace(cfg.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + HeaderIdempotencyKey,
	}))
	app.Use(RequestLogger(log, cfg.Observer))
	return app
}

// errorHandler responde en el formato ErrorResponse lo que llegue sin manejar (404 de rutas, pánicos recuperados).
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "INVALID_BODY"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         authService
	ProductUC      productService
	DistributionUC distributionService
	ReportUC       reportService
	DashboardUC    dashboardService
	JWTSecret      string
	ServiceName    string
	Metrics        nethttp.Handler // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)
	can := RequirePermission

	// Auth (register y login públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", auth, can(access.OpAuthMe), authHandler.Me)

	// Products: rutas fijas antes de /:id
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", auth)
	products.Get("/", can(access.OpProductsList), productHandler.List)
	products.Post("/", can(access.OpProductsCreate), productHandler.Create)
	products.Post("/bulk", can(access.OpProductsBulkCreate), productHandler.BulkCreate)
	products.Get("/available", can(access.OpProductsAvailable), productHandler.Available)
	products.Get("/:id", can(access.OpProductsList), productHandler.GetByID)

	// Distributions
	distHandler := NewDistributionHandler(deps.DistributionUC, deps.ReportUC)
	distributions := api.Group("/distributions", auth)
	distributions.Get("/workers", can(access.OpDistributionsWorkers), distHandler.Workers)
	distributions.Post("/", can(access.OpDistributionsCreate), distHandler.Create)
	distributions.Get("/", can(access.OpDistributionsList), distHandler.List)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := api.Group("/reports", auth)
	reports.Get("/distributions", can(access.OpReportsDistributions), reportHandler.Distributions)
	reports.Get("/product-analytics", can(access.OpReportsProducts), reportHandler.ProductAnalytics)
	reports.Get("/worker-analytics", can(access.OpReportsWorkers), reportHandler.WorkerAnalytics)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard := api.Group("/dashboard", auth)
	dashboard.Get("/stats", can(access.OpDashboardStats), dashboardHandler.Stats)
	dashboard.Get("/recent", can(access.OpDashboardRecent), dashboardHandler.Recent)
}
