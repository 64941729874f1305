package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"dipsport/config"
	_ "dipsport/docs"
	"dipsport/infras/scheduler"
	"dipsport/shared/constant"
	"dipsport/transport/http/middleware"
	"dipsport/transport/http/response"
	"dipsport/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	App        middleware.AppMiddleware
	AuthRole   middleware.AuthRole
	Scheduler  *scheduler.Trigger
	state      atomic.Int32
	mux        *chi.Mux
	server     *http.Server
	setupOnce  sync.Once
	shutdownCh chan struct{}
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, authRole middleware.AuthRole, trigger *scheduler.Trigger) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		App:        app,
		AuthRole:   authRole,
		Scheduler:  trigger,
		shutdownCh: make(chan struct{}),
	}
}

// State reports the current lifecycle state of the server.
func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve listens until a termination signal has been handled.
func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if h.Scheduler != nil {
		h.Scheduler.Start()
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-h.shutdownCh
}

// ServeHTTP serves a single request without owning a listener, for serverless runtimes.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.setupOnce.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.RequestID)
	h.mux.Use(chiMiddleware.RealIP)
	h.mux.Use(chiMiddleware.Recoverer)
	h.mux.Use(h.App.Tracing)
	h.mux.Use(h.App.CORS())
	h.mux.Use(h.App.RateLimit())

	h.mux.Get("/health", h.health)
	h.mux.Get("/swagger/*", httpSwagger.WrapHandler)

	h.mux.Group(func(r chi.Router) {
		r.Use(h.AuthRole.APIKey)
		r.Use(h.AuthRole.Auth)
		r.Use(h.AuthRole.RBAC)

		h.Router.SetupRoutes(r)
	})
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer close(h.shutdownCh)

	shutdownConfig := h.Config.Server.Shutdown
	cleanup := time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(cleanup)

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	h.shutdown(cleanup)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown drains in-flight requests and running jobs within the cleanup period.
func (h *HTTP) shutdown(cleanup time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanup)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}

	if h.Scheduler != nil {
		h.Scheduler.Stop(ctx)
	}
}
