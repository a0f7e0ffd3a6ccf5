package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "portfolio-backend/internal/auth"
	"portfolio-backend/internal/dashboard"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server"
	"portfolio-backend/internal/shared/storage/db"
	"portfolio-backend/internal/shared/storage/object"
	localstore "portfolio-backend/internal/shared/storage/object/local"
	"portfolio-backend/internal/templates"
	"portfolio-backend/internal/users"
	"portfolio-backend/internal/visitors"
	"portfolio-backend/internal/waitlist"
	"portfolio-backend/internal/wizard"
)

// App holds the wired application: repositories, services, handlers and the
// router. Fields stay exported so tests can swap pieces before serving.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Resumes  object.ObjectStore
	Sessions session.Store

	UsersRepo     users.Repo
	TemplatesRepo templates.Repo
	VisitorsRepo  visitors.Repo
	WaitlistRepo  waitlist.Repo
	RequestsRepo  wizard.Repo

	UsersService    *users.Service
	VisitorsService *visitors.Service
	Pipeline        *portfolio.Pipeline
	Renderer        *templates.Renderer
	Exporter        *templates.PDFExporter

	UsersHandler     *users.Handler
	WizardHandler    *wizard.Handler
	WaitlistHandler  *waitlist.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := buildSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Resumes:  localstore.New(cfg.LocalStoreDir),
		Sessions: sessions,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		GoogleAuth:       app.GoogleAuth,
		UsersHandler:     app.UsersHandler,
		WizardHandler:    app.WizardHandler,
		WaitlistHandler:  app.WaitlistHandler,
		DashboardHandler: app.DashboardHandler,
		Visitors:         app.VisitorsService,
	})

	return app, nil
}

// Close releases long-lived resources held by the app.
func (a *App) Close() {
	if a == nil {
		return
	}
	if closer, ok := a.Sessions.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errRequired("DATABASE_URL")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildSessions(ctx context.Context, cfg config.Config) (session.Store, error) {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if strings.TrimSpace(cfg.RedisURL) == "" {
		log.Printf("bootstrap: REDIS_URL empty; using in-memory session store")
		return session.NewMemoryStore(ttl), nil
	}

	store, err := session.NewRedisStore(ctx, cfg.RedisURL, ttl)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis connect failed; using in-memory session store: %v", err)
			return session.NewMemoryStore(ttl), nil
		}
		return nil, err
	}
	return store, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.TemplatesRepo = &templates.PGRepo{DB: app.DB}
		app.VisitorsRepo = &visitors.PGRepo{DB: app.DB}
		app.WaitlistRepo = &waitlist.PGRepo{DB: app.DB}
		app.RequestsRepo = &wizard.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.TemplatesRepo = templates.NewMemoryRepo()
		app.VisitorsRepo = visitors.NewMemoryRepo()
		app.WaitlistRepo = waitlist.NewMemoryRepo()
		app.RequestsRepo = wizard.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.VisitorsService = visitors.NewService(app.VisitorsRepo)

	textGen := &portfolio.GeminiGenerator{Model: app.Config.GeminiModel}
	generator := portfolio.NewGenerator(textGen)
	app.Pipeline = portfolio.NewPipeline(generator, app.Config.GeminiAPIKey)

	app.Renderer = templates.NewRenderer()
	app.Exporter = templates.NewPDFExporter()

	cfg := app.Config
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
		cfg.IsAdminEmail,
	)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.WizardHandler = &wizard.Handler{
		Pipeline:  app.Pipeline,
		Sessions:  app.Sessions,
		Users:     app.UsersService,
		Templates: app.TemplatesRepo,
		Renderer:  app.Renderer,
		Exporter:  app.Exporter,
		Requests:  app.RequestsRepo,
		Resumes:   app.Resumes,
	}
	app.WaitlistHandler = waitlist.NewHandler(app.WaitlistRepo)
	app.DashboardHandler = dashboard.NewHandler(app.UsersService, app.VisitorsService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type errRequired string

func (e errRequired) Error() string { return string(e) + " is required" }
