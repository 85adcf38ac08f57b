package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/notify/pkg/host"
	"github.com/vango-dev/notify/pkg/notify"
)

func serveCmd() *cobra.Command {
	var (
		addr            string
		logLevel        string
		logJSON         bool
		readTimeout     time.Duration
		shutdownTimeout time.Duration
		demo            bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the notification host server",
		Long: `Start the WebSocket server clients connect to.

Routes:
  /ws       WebSocket endpoint for clients
  /healthz  liveness probe
  /metrics  Prometheus metrics

Examples:
  notifyd serve
  notifyd serve --addr=:9000 --log-level=debug
  notifyd serve --demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(logLevel, logJSON)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			opts := []host.ServerOption{
				host.WithAddr(addr),
				host.WithServerLogger(logger),
				host.WithReadTimeout(readTimeout),
				host.WithShutdownTimeout(shutdownTimeout),
			}
			if demo {
				opts = append(opts, host.WithOnConnect(demoOnConnect))
			}

			srv := host.NewServer(opts...)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 60*time.Second, "WebSocket read deadline")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown deadline")
	cmd.Flags().BoolVar(&demo, "demo", false, "Greet each connecting client with a sample notification")

	return cmd
}

func buildLogger(level string, jsonFormat bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}

// demoOnConnect shows a sample notification so a fresh deployment can be
// poked at without writing any server code.
func demoOnConnect(s *host.Session) {
	s.NotifyWithTitle("Connected", "This notification dismisses itself in 8 seconds. Hover to pause.",
		notify.WithType(notify.TypeInfo),
		notify.WithDuration(8*time.Second),
		notify.WithProgressBar(),
	)
}
