package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0x0FACED/go-fortune/internal/config"
	"github.com/0x0FACED/go-fortune/pkg/logger"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:          "fortune",
		Short:        "Voronoi diagram demo server (Fortune's algorithm)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := zapcore.InfoLevel
			if verbose {
				level = zapcore.DebugLevel
			}
			log := logger.NewConsole(os.Stderr, level)
			defer log.Sync()

			return serve(cmd.Context(), cfg, log)
		},
	}

	root.Flags().StringVar(&addr, "addr", config.Default().Addr, "listen address")
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return root
}

func serve(ctx context.Context, cfg config.Config, log *logger.ZapLogger) error {
	s := &server{defaults: cfg.Diagram, log: log}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("[http] Сервер запущен", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("[http] Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
