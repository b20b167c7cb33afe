// Command geonames-api serves place queries over a GeoNames dump.
//
// Usage:
//
//	geonames-api [-config service.yaml] [-addr host:port] [-dataset RU.txt]
//
// The dataset is loaded into memory once at startup; the process refuses to
// serve until the index is complete.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	geonames "github.com/danzay42/infotecs"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataset := flag.String("dataset", "", "dataset path (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, assuming environment variables are set directly")
	}

	cfg, err := geonames.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dataset != "" {
		cfg.DatasetPath = *dataset
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	ix, err := geonames.Load(cfg.DatasetPath, geonames.WithSourceURL(cfg.DatasetURL))
	if err != nil {
		log.Fatalf("loading dataset: %v", err)
	}
	svc := geonames.NewService(ix)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newAPI(svc, log.StandardLogger()).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(log.Fields{"addr": cfg.Addr, "records": svc.Len()}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("received termination signal, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
		os.Exit(1)
	}
}
