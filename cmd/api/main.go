package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/dataset"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/memory"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "production"}).Fatal().Err(err).Msg("configuração inválida")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Preferências (controles de visualização)
	prefs, prefsDB, err := openPreferences(ctx, cfg.Preferences)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Preferences.Driver).Msg("falha ao abrir preferências")
	}
	if prefsDB != nil {
		defer prefsDB.Close()
	}

	// 2. Eventos de conversão
	var events queue.EventPublisherInterface = queue.LogPublisher{Log: log}
	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("falha ao conectar no RabbitMQ")
		}
		defer rabbit.Close()
		events = queue.NewProducer(rabbit.Ch)

		if cfg.Mail.Enabled() {
			notifier := mail.NewEmailSender(
				cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
				cfg.Mail.From, cfg.Mail.NotifyTo,
			)
			consumer := queue.NewWorker(rabbit.Ch, notifier, log)
			go func() {
				if err := consumer.Start(ctx, queue.QueueName); err != nil {
					log.Error().Err(err).Msg("worker de oportunidades parou")
				}
			}()
		}
	}

	// 3. Workspace
	ws := usecase.NewLeadWorkspace(usecase.WorkspaceDeps{
		Leads:         memory.NewLeadStore(),
		Opportunities: memory.NewOpportunityStore(),
		Source:        dataset.NewBundledSource(),
		Controls:      usecase.NewControlsRepository(prefs),
		Events:        events,
		Latency:       usecase.SleepLatency{},
		Latencies: usecase.Latencies{
			Load:    cfg.Simulation.LoadLatency,
			Save:    cfg.Simulation.SaveLatency,
			Convert: cfg.Simulation.ConvertLatency,
		},
		Failure: usecase.NewRandomFailure(cfg.Simulation.FailureRate, 0),
		Metrics: middleware.Recorder{},
		Log:     log,
	})
	go func() {
		if err := ws.Startup(ctx); err != nil {
			log.Error().Err(err).Msg("falha ao carregar leads")
		}
	}()

	// 4. Funil
	funnel := worker.NewFunnelWorker(ws, middleware.Recorder{}, cfg.Funnel.Tick, log)
	go funnel.Start(ctx)

	// 5. Router
	limiter := handlers.NewRateLimiter(cfg.HTTP.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	handlers.NewLeadHandler(ws, log).Routes(r, limiter.Middleware)
	r.Get("/health", healthHandler(prefsDB, rabbit, ws).Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🔥 servidor de leads rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("falha no servidor HTTP")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("encerrando...")
	ws.Teardown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown forçado")
	}
}

func openPreferences(ctx context.Context, cfg config.PreferencesConfig) (entity.PreferenceStore, *sql.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := database.NewPreferenceRepository(ctx, db, database.DialectSQLite)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	case "postgres":
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := database.NewPreferenceRepository(ctx, db, database.DialectPostgres)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	default:
		return memory.NewPreferenceStore(), nil, nil
	}
}

// healthHandler evita passar ponteiros nil dentro de interfaces.
func healthHandler(db *sql.DB, rabbit *queue.RabbitMQ, ws handlers.Workspace) *handlers.HealthHandler {
	h := handlers.NewHealthHandler(nil, nil, ws)
	if db != nil {
		h.Preferences = db
	}
	if rabbit != nil {
		h.RabbitMQ = rabbit.Conn
	}
	return h
}
