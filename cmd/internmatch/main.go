// cmd/internmatch/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"internmatch-client/internal/common/config"
	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/observability"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return 1
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.ListenAddress != "" {
		srv := startMetricsServer(cfg.Metrics.ListenAddress, zapLog)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	app, err := newApp(ctx, cfg, log, obs)
	if err != nil {
		zapLog.Error("startup failed", zap.Error(err))
		return 1
	}
	defer app.Close()

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		return 2
	}

	if err := cmd.run(ctx, app, args[1:]); err != nil {
		msg := errors.NewErrorHandler(log).Surface(args[0], err)
		fmt.Fprintln(os.Stderr, "Error:", msg)
		return 1
	}
	return 0
}

func startMetricsServer(addr string, zapLog *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("metrics server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: internmatch <command> [flags]

Student:
  login        sign in (--role admin|company for operator views)
  signup       create a student account
  logout       sign out
  whoami       show the current session
  listings     browse internship listings
  recommend    show ranked recommendations
  apply        record an application (--id)
  save         save a listing for later (--id)
  profile      show or edit the profile (profile edit --skills ...)

Admin:
  admin list | create | delete | purge-expired

Company:
  company applicants [--listing ID]`)
}
