package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kredio/kredio/internal/bankdata"
	"github.com/kredio/kredio/internal/config"
	"github.com/kredio/kredio/internal/engine"
	"github.com/kredio/kredio/internal/metrics"
	"github.com/kredio/kredio/internal/tools"
)

func main() {
	if err := runFn(os.Args[1:], os.Getenv, listenAndServe, newServer); err != nil {
		fatalf("server error: %v", err)
	}
}

var runFn = run
var fatalf = log.Fatalf

func newServer(cfg config.Config) *http.Server {
	logger := cfg.NewLogger(os.Stderr)

	store := bankdata.NewStore(cfg.DataPath, logger)
	// Warm the snapshot so a broken data file shows up at startup, not on
	// the first tool call.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if snap, err := store.Snapshot(ctx); err != nil {
		logger.Warn("bank data not loadable at startup", "path", cfg.DataPath, "error", err)
	} else {
		logger.Info("bank data loaded", "path", cfg.DataPath, "customers", len(snap.Customers), "hash", snap.Hash)
	}

	reg := prometheus.NewRegistry()
	handler := tools.NewHandler(engine.New(store, logger), logger, metrics.New(reg), reg)

	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type envFn func(string) string
type listenFn func(*http.Server) error
type serverFactory func(cfg config.Config) *http.Server

func run(args []string, getenv envFn, listen listenFn, factory serverFactory) error {
	fs := flag.NewFlagSet("kredio-gateway", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to kredio config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgFile := *configPath
	if cfgFile == "" {
		cfgFile = getenv("KREDIO_CONFIG_PATH")
	}

	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if addr := getenv("KREDIO_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if path := getenv("KREDIO_DATA_PATH"); path != "" {
		cfg.DataPath = path
	}

	server := factory(cfg)

	log.Printf("kredio-gateway listening on %s", cfg.ListenAddr)
	if err := listen(server); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func listenAndServe(server *http.Server) error {
	return server.ListenAndServe()
}
