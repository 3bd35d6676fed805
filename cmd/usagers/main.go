package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/maxviazov/usagers-client/internal/config"
	"github.com/maxviazov/usagers-client/internal/console"
	"github.com/maxviazov/usagers-client/internal/controller"
	"github.com/maxviazov/usagers-client/internal/handler"
	"github.com/maxviazov/usagers-client/internal/logger"
	"github.com/maxviazov/usagers-client/internal/metrics"
	"github.com/maxviazov/usagers-client/internal/repository/httpapi"
	"github.com/maxviazov/usagers-client/internal/service"
	"github.com/maxviazov/usagers-client/internal/terminal"
)

func main() {
	flags := pflag.NewFlagSet("usagers", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML config file")
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	// Load application config
	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	if cfg.Logger.Env == "" && cfg.App.Env != "test" {
		cfg.Logger.Env = cfg.App.Env
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := httpapi.New(cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("api client initialization failed")
	}

	pinger := httpapi.NewPinger(client)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.API.Timeout)
	if err := pinger.Ping(pingCtx); err != nil {
		appLogger.Warn().Err(err).Str("base_url", client.BaseURL()).Msg("api not reachable yet, continuing")
	}
	cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: handler.NewRouter(pinger, client.BaseURL(), m.Handler()), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error().Err(err).Str("addr", cfg.Metrics.Addr).Msg("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		appLogger.Info().Str("addr", cfg.Metrics.Addr).Msg("ops endpoint enabled (/live, /ready, /metrics)")
	}

	screen := terminal.New(os.Stdout, cfg.UI.MessageDuration)
	svc := service.NewUserService(httpapi.NewUserRepository(client), appLogger)
	ctl := controller.New(ctx, svc, screen, screen, appLogger, controller.Options{
		DefaultLimit: cfg.UI.DefaultLimit,
		MaxLimit:     cfg.UI.MaxLimit,
		Debounce:     cfg.UI.Debounce,
		Metrics:      m,
	})
	defer ctl.Close()

	appLogger.Info().Str("base_url", client.BaseURL()).Msg("🚀 Session started")
	ctl.Load()

	if err := console.New(ctl, os.Stdout, appLogger).Run(ctx, os.Stdin); err != nil {
		appLogger.Error().Err(err).Msg("console input failed")
	}
	appLogger.Info().Msg("session ended")
}
