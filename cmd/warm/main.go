package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/app"
	"github.com/meur/dexforge/internal/config"
)

var (
	cfgFile   string
	fromPage  int
	pageCount int
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "dexforge-warm",
	Short: "Prefetch catalog pages into the response cache",
	Long: `dexforge-warm walks catalog pages and loads every listed Pokémon
through the configured cache, so a freshly started server answers the first
visitors from cache. Only useful with the sqlite cache driver.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := cfg.NewLogger(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.CacheDriver != "sqlite" {
			logger.Warn("cache driver is not sqlite; warmed entries will not outlive this process",
				zap.String("cache_driver", cfg.CacheDriver))
		}

		return warm(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "dexforge.yml", "config file path")
	rootCmd.Flags().IntVar(&fromPage, "from", 1, "first page to fetch")
	rootCmd.Flags().IntVar(&pageCount, "pages", 5, "number of pages to fetch")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func warm(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.PurgeCache(ctx); err != nil {
		return err
	}

	pager := a.Catalog.Paginator()
	start := pager.Clamp(fromPage)
	end := pager.Clamp(start + pageCount - 1)

	warmed, failed := 0, 0
	began := time.Now()
	for page := start; page <= end; page++ {
		view, err := a.Catalog.List(ctx, page)
		if err != nil {
			failed++
			logger.Warn("page failed", zap.Int("page", page), zap.Error(err))
			continue
		}
		warmed += len(view.Cards)
		logger.Info("page warmed", zap.Int("page", page), zap.Int("pokemon", len(view.Cards)))
	}

	logger.Info("warm complete",
		zap.Int("pages", end-start+1),
		zap.Int("pokemon", warmed),
		zap.Int("failed_pages", failed),
		zap.Int("cache_entries", a.CacheEntries(ctx)),
		zap.Duration("elapsed", time.Since(began)))

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, end-start+1)
	}
	return nil
}
