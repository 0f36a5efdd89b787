package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clotmeter/clotmeter/server/internal/api"
	"github.com/clotmeter/clotmeter/server/internal/auth"
	"github.com/clotmeter/clotmeter/server/internal/config"
	"github.com/clotmeter/clotmeter/server/internal/metrics"
	"github.com/clotmeter/clotmeter/server/internal/web"
	"github.com/clotmeter/clotmeter/server/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("clotmeter-server starting", "config", *configPath)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	level.Set(cfg.Server.Level())

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"log_level", cfg.Server.LogLevel,
		"auth_mode", cfg.Server.Auth.Mode,
		"ws_enabled", cfg.Server.WS.Enabled,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := metrics.New()
	form := web.New(reg, cfg.Server.UI)

	// Log level and UI settings follow the config file; port and auth need a restart.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				level.Set(updated.Server.Level())
				form.SetUI(updated.Server.UI)
				slog.Info("config hot-reloaded",
					"log_level", updated.Server.LogLevel,
					"title", updated.Server.UI.Title,
				)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	guard := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	httpMux := http.NewServeMux()
	httpMux.Handle("/", form)
	httpMux.Handle("/api/", guard(api.New(reg)))
	httpMux.Handle("/metrics", reg)

	if cfg.Server.WS.Enabled {
		hub := ws.New(reg)
		go hub.Run(ctx)
		httpMux.Handle("/ws/calculate", guard(hub))
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("clotmeter-server shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown", "err", err)
	}
}
