package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	auth "Helmholtz/internal/auth"
	batch "Helmholtz/internal/calc/batch"
	helmholtz "Helmholtz/internal/calc/helmholtz"
	importer "Helmholtz/internal/calc/importer"
	report "Helmholtz/internal/calc/report"
	config "Helmholtz/internal/config"
	repo "Helmholtz/internal/repo"
)

var wg sync.WaitGroup

// Store is the persistence the server needs.
type Store interface {
	repo.UserRepository
	repo.CalculationRepository
}

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, store Store) {
	authEnv := &auth.Authenv{
		JWTkey:   []byte(cfg.TokenKey),
		Repo:     store,
		Secure:   cfg.TLS(),
		TokenTTL: cfg.TokenTTL,
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	coilH := &helmholtz.Handler{History: store, HistoryLimit: cfg.HistoryLimit}
	batchH := &batch.Handler{History: store}
	importH := &importer.Handler{History: store}
	reportH := &report.Handler{}

	api.HandleFunc("/tools/helmholtz/gauges", coilH.Gauges).Methods("GET")
	api.HandleFunc("/tools/helmholtz/gauges/{awg:[0-9]+}", coilH.Gauge).Methods("GET")
	api.HandleFunc("/tools/helmholtz/template.xlsx", importH.Template).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/tools/helmholtz/summary", coilH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/custom", coilH.Custom).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/recommend", coilH.Recommend).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/resistance", coilH.Resistance).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/import", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/export", importH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/helmholtz/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/history", coilH.ListHistory).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}
	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		logrus.Fatal(err)
	}

	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Database error: %v", err)
	}
	defer db.Close()
	store := repo.NewPostgresDB(db)
	if err := store.Migrate(ctx); err != nil {
		logrus.Fatalf("Database error: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("Starting server")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logrus.Errorf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server shutdown error: %v", err)
	}
	logrus.Info("Server stopped")

	wg.Wait()
}
