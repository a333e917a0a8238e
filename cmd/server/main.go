package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/auth"
	"github.com/mmynk/homegame/internal/config"
	"github.com/mmynk/homegame/internal/identity"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/middleware"
	"github.com/mmynk/homegame/internal/service"
	"github.com/mmynk/homegame/internal/storage/sqlite"
	"github.com/mmynk/homegame/pkg/logging"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	resolver := identity.NewCachingResolver(identity.NewStoreResolver(store))
	manager := league.NewManager(store, resolver, league.WithTimeout(cfg.StorageTimeout))

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager,
			api.AuthServiceRegisterProcedure,
			api.AuthServiceLoginProcedure,
		),
	)

	r := mux.NewRouter()
	register := func(path string, handler http.Handler) {
		r.PathPrefix(path).Handler(handler).Methods(http.MethodPost, http.MethodGet)
	}

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())
	register(api.NewAuthServiceHandler(authSvc, interceptors))
	register(api.NewGroupServiceHandler(service.NewGroupService(manager, cfg.PublicURL), interceptors))
	register(api.NewClaimServiceHandler(service.NewClaimService(manager), interceptors))
	register(api.NewGameServiceHandler(service.NewGameService(manager), interceptors))
	register(api.NewStatsServiceHandler(service.NewStatsService(manager), interceptors))
	register(api.NewPayoutServiceHandler(service.NewPayoutService(manager), interceptors))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Use(loggingMiddleware)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}).Handler(r)

	// h2c serves HTTP/2 without TLS for Connect clients.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "public_url", cfg.PublicURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// loggingMiddleware logs plain HTTP requests; RPCs are logged by the
// Connect interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
