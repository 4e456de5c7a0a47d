package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/contact/internal/config"
	"github.com/vango-dev/contact/internal/errors"
	"github.com/vango-dev/contact/internal/logging"
	"github.com/vango-dev/contact/pkg/inbox"
	"github.com/vango-dev/contact/pkg/middleware"
	"github.com/vango-dev/contact/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the contact form server",
		Long: `Start the HTTP and WebSocket server.

Settings come from the config file, CONTACT_* environment variables and
the flags below, in increasing order of precedence.

Examples:
  contactd serve
  contactd serve --addr :3000 --dev
  CONTACT_INBOX_SINKS=log,sqlite contactd serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if dev {
				cfg.Server.DevMode = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Listen address")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode (no client caching, pretty HTML)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Writer: stderr,
	})
	if err != nil {
		return errors.New("C106").WithKey("log").Wrap(err)
	}
	defer logCloser.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(middleware.WithRegistry(registry))

	sinks, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	dispatcher := inbox.NewDispatcher(
		inbox.NewMulti(metrics.ObserveDelivery, sinks...),
		inbox.DispatcherConfig{
			QueueSize: cfg.Inbox.QueueSize,
			Workers:   cfg.Inbox.Workers,
			Timeout:   cfg.Inbox.DeliveryTimeout,
		},
		logger,
	)

	srv := server.New(serverConfig(cfg), server.Options{
		Logger:    logger,
		Metrics:   metrics,
		Gatherer:  registry,
		Tracer:    middleware.NewTracer(middleware.WithTracerName("contactd")),
		Submitter: dispatcher,
	})

	runErr := srv.Run(ctx)

	// Sessions are closed by now, so nothing enqueues anymore.
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := dispatcher.Close(drainCtx); err != nil {
		logger.Error("inbox drain incomplete", "pending", dispatcher.Pending(), "error", err)
	}

	if runErr != nil {
		return errors.New("C500").WithKey(cfg.Server.Addr).Wrap(runErr)
	}
	return nil
}

// openSinks builds the enabled inbox sinks in configuration order.
func openSinks(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]inbox.Sink, error) {
	var sinks []inbox.Sink
	closeAll := func() {
		for _, s := range sinks {
			s.Close()
		}
	}

	for _, name := range cfg.Inbox.Sinks {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case config.SinkLog:
			sinks = append(sinks, inbox.NewLogSink(logger))

		case config.SinkSQLite:
			db, err := inbox.OpenSQLite(ctx, cfg.Inbox.SQLite.Path)
			if err != nil {
				closeAll()
				return nil, errors.New("C300").WithKey(cfg.Inbox.SQLite.Path).Wrap(err)
			}
			sinks = append(sinks, db)

		case config.SinkS3:
			s3cfg := cfg.Inbox.S3
			client := inbox.NewS3Client(inbox.S3Options{
				Region:    s3cfg.Region,
				Endpoint:  s3cfg.Endpoint,
				PathStyle: s3cfg.PathStyle,
			})
			// Fail at startup rather than on the first delivery.
			if _, err := client.Options().Credentials.Retrieve(ctx); err != nil {
				closeAll()
				return nil, errors.New("C301").WithKey("inbox.s3").Wrap(err)
			}
			sinks = append(sinks, inbox.NewS3Sink(client, s3cfg.Bucket, s3cfg.Prefix))
		}
	}

	if len(sinks) == 0 {
		logger.Warn("no inbox sinks enabled, submissions are dropped after acceptance")
	} else {
		names := make([]string, len(sinks))
		for i, s := range sinks {
			names[i] = s.Name()
		}
		logger.Info("inbox ready", "sinks", strings.Join(names, ","))
	}
	return sinks, nil
}

// serverConfig maps the file configuration onto the server's.
func serverConfig(cfg *config.Config) *server.ServerConfig {
	sc := server.DefaultServerConfig()
	sc.Address = cfg.Server.Addr
	sc.Title = cfg.Server.Title
	sc.ReadTimeout = cfg.Server.ReadTimeout
	sc.WriteTimeout = cfg.Server.WriteTimeout
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	sc.CheckOrigin = server.AllowOrigins(cfg.Server.AllowedOrigins)
	sc.MaxSessions = cfg.Session.MaxSessions
	sc.DevMode = cfg.Server.DevMode

	sc.SessionConfig.IdleTimeout = cfg.Session.IdleTimeout
	sc.SessionConfig.WriteTimeout = cfg.Session.WriteTimeout
	sc.SessionConfig.MaxEventQueue = cfg.Session.EventQueueSize
	return sc
}
