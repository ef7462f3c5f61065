package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Coil/internal/auth"
	coil "Coil/internal/calc/coil"
	autodesign "Coil/internal/calc/premium/autodesign"
	batch "Coil/internal/calc/premium/batch"
	importer "Coil/internal/calc/premium/importer"
	recommend "Coil/internal/calc/premium/recommend"
	report "Coil/internal/calc/report"
	"Coil/internal/config"
	repo "Coil/internal/repo"
	logx "Coil/pkg/logger"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, userRepo repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: userRepo, Secure: cfg.TLS()}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(accessLog, limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	// Registered ahead of the public tool routes, otherwise the subrouter's
	// miss replaces their 405 with a 404.
	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	coilH := coil.NewHandler()
	api.HandleFunc("/tools/coil/fluids", coilH.Presets).Methods("GET")
	api.HandleFunc("/tools/coil/calc", coilH.Calc).Methods("POST")

	secureApi.HandleFunc("/me", authEnv.Me).Methods("GET")

	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{FontPath: cfg.ReportFont}
	recommendH := &recommend.Handler{}
	autodesignH := &autodesign.Handler{}

	secureApi.HandleFunc("/tools/coil/batch", batchH.Coil).Methods("POST")
	secureApi.HandleFunc("/tools/coil/import", importerH.Coil).Methods("POST")
	secureApi.HandleFunc("/tools/coil/export", importerH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/coil/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/coil/recommend", recommendH.Diameter).Methods("POST")
	secureApi.HandleFunc("/tools/coil/layout", autodesignH.Layout).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Env})

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logx.Fatal().Err(err).Msg("database is not reachable")
	}
	defer db.Close()
	userRepo := repo.NewPostgresUserDB(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		logx.Fatal().Err(err).Msg("database schema")
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, userRepo)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logx.Info().Str("addr", cfg.Addr).Bool("tls", cfg.TLS()).Str("env", cfg.Env.String()).Msg("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal().Err(err).Msg("server shutdown")
	}
	logx.Info().Msg("server stopped")

	wg.Wait()
}
