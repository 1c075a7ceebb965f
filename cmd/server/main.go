package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/api"
	"github.com/meur/dexforge/internal/app"
	"github.com/meur/dexforge/internal/config"
	"github.com/meur/dexforge/internal/preview"
	"github.com/meur/dexforge/internal/web"
)

var (
	cfgFile string
	port    int
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dexforge-server",
	Short: "Serve the Pokédex catalog and detail pages",
	Long: `dexforge-server renders a browsable Pokédex on top of PokéAPI.
Catalog pages, detail pages, a JSON API and social preview images are all
built from upstream data on each request.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := cfg.NewLogger(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return serve(cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "dexforge.yml", "config file path")
	rootCmd.Flags().IntVar(&port, "port", 8080, "server port (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	a, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.PurgeCache(context.Background()); err != nil {
		logger.Warn("cache purge failed", zap.Error(err))
	}

	pages, err := web.Parse()
	if err != nil {
		return err
	}

	handler := api.New(a.Catalog, pages, preview.NewRenderer(a.HTTP), api.Options{
		PublicURL:      cfg.PublicURL,
		AppScheme:      cfg.AppScheme,
		AndroidPackage: cfg.AndroidPackage,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: 2 * cfg.RequestTimeout,
	}, logger.Named("http"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      3 * cfg.RequestTimeout,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dexforge starting",
			zap.String("addr", srv.Addr),
			zap.String("upstream", cfg.UpstreamURL),
			zap.String("cache", cfg.CacheDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
