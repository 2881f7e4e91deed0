// Package router assembles the Fiber application: middleware, handlers and URL routes.
package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "timetracker/docs"
	"timetracker/internal/handlers"
	"timetracker/internal/metrics"
	"timetracker/internal/middleware"
	"timetracker/internal/repository"
	"timetracker/internal/services"
)

// Options configures the application. Only DB is required.
type Options struct {
	DB *gorm.DB

	// SessionStorage keeps session data; nil keeps sessions in memory.
	SessionStorage    fiber.Storage
	SessionExpiration time.Duration
	SessionCookie     string

	// Archiver receives a copy of every entry export; nil disables archiving.
	Archiver services.Archiver

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	AccessLog bool
}

// New builds the application with every route registered.
func New(opts Options) *fiber.App {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.SessionExpiration == 0 {
		opts.SessionExpiration = 24 * time.Hour
	}
	if opts.SessionCookie == "" {
		opts.SessionCookie = "timetracker_session"
	}

	collector := metrics.NewCollector(opts.Registerer)

	clientRepo := repository.NewClientRepository(opts.DB)
	projectRepo := repository.NewProjectRepository(opts.DB)
	entryRepo := repository.NewEntryRepository(opts.DB)
	userRepo := repository.NewUserRepository(opts.DB)

	clientService := services.NewClientService(clientRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo)
	entryService := services.NewEntryService(entryRepo, projectRepo)
	authService := services.NewAuthService(userRepo)
	exportService := services.NewExportService(entryService, opts.Archiver)

	sessions := session.New(session.Config{
		Storage:        opts.SessionStorage,
		Expiration:     opts.SessionExpiration,
		KeyLookup:      "cookie:" + opts.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	auth := middleware.NewAuth(sessions, authService)

	app := fiber.New(fiber.Config{AppName: "timetracker"})
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.Metrics(collector))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Get(handlers.RootPath, handlers.RootRedirect)

	authHandler := handlers.NewAuthHandler(authService, auth, collector)
	authGroup := app.Group("/auth")
	authGroup.Get("/login/", authHandler.LoginForm)
	authGroup.Post("/login/", authHandler.Login)
	authGroup.Get("/logout/", authHandler.Logout)
	authGroup.Post("/logout/", authHandler.Logout)

	clientHandler := handlers.NewClientHandler(clientService, collector)
	clients := app.Group("/clients", auth.RequireLogin())
	clients.Get("/", clientHandler.ListClients)
	clients.Post("/", clientHandler.CreateClient)
	clients.Get("/:id/", clientHandler.GetClient)
	clients.Post("/:id/", clientHandler.UpdateClient)
	clients.Put("/:id/", clientHandler.UpdateClient)

	entryHandler := handlers.NewEntryHandler(entryService, exportService, collector)
	entries := app.Group("/entries", auth.RequireLogin())
	entries.Get("/", entryHandler.ListEntries)
	entries.Post("/", entryHandler.CreateEntry)
	entries.Get("/export/", entryHandler.ExportEntries)

	projectHandler := handlers.NewProjectHandler(projectService, collector)
	projects := app.Group("/projects", auth.RequireLogin())
	projects.Get("/", projectHandler.ListProjects)
	projects.Post("/", projectHandler.CreateProject)
	projects.Get("/:id/", projectHandler.GetProject)
	projects.Post("/:id/", projectHandler.UpdateProject)
	projects.Put("/:id/", projectHandler.UpdateProject)

	return app
}

// LogRoutes prints every registered route.
func LogRoutes(app *fiber.App) {
	log.Println("Registered routes:")
	for _, r := range app.GetRoutes(true) {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}
}
