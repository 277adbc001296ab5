package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"docegestao.app/internal/auth"
	"docegestao.app/internal/catalog"
	"docegestao.app/internal/httpapi"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/obs"
	"docegestao.app/internal/sales"
	"docegestao.app/internal/store/pg"
	"docegestao.app/internal/stream"
)

var version = "1.0.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("DOCEGESTAO_COMMIT"))

	cfg := httpapi.Config{
		Version: version,
		Hub:     stream.New(),
	}

	// Postgres when a DSN is set; in-memory stores otherwise. The in-memory
	// mode keeps local development and demos free of infrastructure.
	var store *pg.Store
	if dsn := os.Getenv("DOCEGESTAO_PG_DSN"); dsn != "" {
		var err error
		store, err = pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		cfg.Ready = httpapi.ReadyProbe{DB: store.DB()}
		cfg.Catalog = store.Catalog()
		cfg.Ledger = store.Ledger()
		cfg.Sales = store.Sales()
		cfg.Finalizer = store
		cfg.Auth = auth.NewService(auth.NewPostgresStore(store.DB()))
	} else {
		cfg.Catalog = catalog.NewInMemory()
		cfg.Ledger = ledger.NewInMemory()
		cfg.Sales = sales.NewInMemoryLog()
		cfg.Auth = auth.NewService(auth.NewInMemoryStore())
	}

	api := httpapi.New(cfg)

	addr := os.Getenv("DOCEGESTAO_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting docegestao-api %s on %s", version, srv.Addr)
	obs.SetReady(true)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	obs.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if store != nil {
		_ = store.Close()
	}
	log.Println("Stopped")
}
