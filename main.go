package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boomrig/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the debug overlay")
	tuningPath := flag.String("tuning", "", "tuning prefab (defaults to prefabs/tuning.yaml)")
	bindingsPath := flag.String("bindings", "", "key bindings prefab (defaults to prefabs/bindings.yaml)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9090")
	watch := flag.Bool("watch", false, "reload prefabs when they change on disk")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))

	registry := prometheus.NewRegistry()
	controller, err := metrics.NewController(registry)
	if err != nil {
		logger.Fatal("metrics", zap.Error(err))
	}
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, registry, logger)
	}

	game, err := NewGame(GameOptions{
		TuningFile:   *tuningPath,
		BindingsFile: *bindingsPath,
		Watch:        *watch,
		Debug:        *debug,
		Logger:       logger,
		Metrics:      controller,
	})
	if err != nil {
		logger.Fatal("new game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("boomrig")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serveMetrics(addr string, registry *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", zap.Error(err))
	}
}
