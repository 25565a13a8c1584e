package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_formatter/internal/adapters/logger"
	"github.com/baditaflorin/go_text_formatter/internal/adapters/metrics"
	"github.com/baditaflorin/go_text_formatter/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_formatter/internal/config"
	"github.com/baditaflorin/go_text_formatter/internal/core/format"
	"github.com/baditaflorin/go_text_formatter/internal/handler"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
	"github.com/baditaflorin/go_text_formatter/internal/transport/httpgw"
	"github.com/baditaflorin/go_text_formatter/internal/transport/zmq"
	"github.com/baditaflorin/go_text_formatter/internal/warmup"
)

var rootCmd = &cobra.Command{
	Use:   "textformatter-server",
	Short: "Text formatting service over a ZeroMQ request/reply socket",
	Long: `Normalizes whitespace and re-cases text. Each request is a JSON object
{"text": "...", "format_type": "sentence|upper|lower|title"} and gets exactly
one JSON reply {"formatted_text": "..."} or {"formatted_text": "", "error": "..."}.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config.LoadDotEnv()
		return nil
	},
	RunE: run,
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{File: cfg.LogFile, JSON: cfg.LogJSON})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	norm := normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType)
	formatter := format.NewFormatter(norm)

	if cfg.WarmUp {
		mgr := warmup.NewManager(log, warmup.DefaultWarmupConfig())
		mgr.RegisterNormalizer(norm)
		mgr.RegisterFormatter(formatter)
		mgr.WarmUp(ctx)
	}

	counter := metrics.NewCounter()
	prom := metrics.NewPrometheus(metrics.DefaultPrometheusConfig())
	h := handler.New(formatter,
		handler.WithObserver(metrics.Multi{counter, prom}),
		handler.WithLogger(log),
	)

	endpoint := zmq.Endpoint(cfg.Bind, cfg.Port)
	log.Info("Starting text formatter service",
		"endpoint", endpoint,
		"http_addr", cfg.HTTPAddr,
		"format_types", "sentence, upper, lower, title",
	)

	err = serve(ctx, cfg, endpoint, h, prom, log)

	log.Info("Shutting down text formatter service", "total_requests", counter.Total())
	if err != nil {
		log.Error("Server error", "error", err)
	}
	return err
}

// serve runs the socket server, and the HTTP gateway when configured, until
// ctx is cancelled or one of them fails.
func serve(ctx context.Context, cfg config.Config, endpoint string, h *handler.Handler, prom *metrics.Prometheus, log ports.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := zmq.NewServer(endpoint, h, zmq.WithServerLogger(log))
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})

	if cfg.HTTPAddr != "" {
		gw := httpgw.New(h,
			httpgw.WithLogger(log),
			httpgw.WithMetricsHandler(prom.Handler()),
		)
		g.Go(func() error {
			return gw.ListenAndServe(cfg.HTTPAddr)
		})
		g.Go(func() error {
			<-gctx.Done()
			return gw.Shutdown()
		})
	}

	return g.Wait()
}
