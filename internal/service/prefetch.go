package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bradchang-ux/stock-backtest/internal/logger"
	"github.com/bradchang-ux/stock-backtest/internal/marketdata"
	"github.com/bradchang-ux/stock-backtest/internal/storage"
)

const maxPrefetchParallel = 8

// PrefetchSymbols warms the bar cache for a list of symbols over one
// date range, fetching concurrently with bounded parallelism. Symbols
// whose range is already covered by the fetch log are skipped unless
// force is set. The first failure cancels the remaining fetches.
func PrefetchSymbols(ctx context.Context, provider marketdata.Provider, repo storage.BarsRepository, symbols []string, start, end time.Time, parallel int, force bool) error {
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols to prefetch")
	}

	maxParallel := maxPrefetchParallel
	if parallel > 0 {
		if parallel > maxPrefetchParallel {
			parallel = maxPrefetchParallel
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().
		Int("symbols", len(symbols)).
		Int("max_parallel", maxParallel).
		Msg("prefetch start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, symbol := range symbols {
		idx := i
		sym := symbol

		g.Go(func() error {
			startedAt := time.Now()

			covered, err := repo.HasFetchForRange(sym, start, end)
			if err != nil {
				return fmt.Errorf("symbol %s: check fetch log: %w", sym, err)
			}
			if covered && !force {
				logger.L().Info().Int("idx", idx+1).Int("total", len(symbols)).Str("symbol", sym).Bool("skipped", true).Msg("already cached")
				return nil
			}

			bars, err := provider.FetchDailyBars(gctx, sym, start, end)
			if err != nil {
				logger.L().Error().Str("symbol", sym).Err(err).Msg("fetch failed")
				return fmt.Errorf("symbol %s: %w", sym, err)
			}

			if err := repo.ReplaceBarsBatch(sym, start, end, bars); err != nil {
				return fmt.Errorf("symbol %s: cache write: %w", sym, err)
			}
			if err := repo.UpsertFetchLog(sym, start, end, len(bars)); err != nil {
				return fmt.Errorf("symbol %s: fetch log: %w", sym, err)
			}

			logger.L().Info().
				Int("idx", idx+1).
				Int("total", len(symbols)).
				Str("symbol", sym).
				Int("bars", len(bars)).
				Dur("elapsed", time.Since(startedAt)).
				Bool("force", force).
				Msg("symbol cached")
			return nil
		})
	}

	return g.Wait()
}
