package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
	"github.com/bradchang-ux/stock-backtest/internal/logger"
	"github.com/bradchang-ux/stock-backtest/internal/marketdata"
	"github.com/bradchang-ux/stock-backtest/internal/pullback"
	"github.com/bradchang-ux/stock-backtest/internal/storage"
)

// timeNow is an indirection for tests that pin the incomplete-week cutoff.
var timeNow = time.Now

// BacktestService runs the fetch-validate-compute cycle for a symbol.
// All state is request-scoped; nothing computed here outlives the call.
type BacktestService interface {
	Run(ctx context.Context, symbol string, start, end time.Time) (*models.BacktestReport, error)
	WindowBars(ctx context.Context, symbol string, referenceDay time.Time) ([]models.DailyBar, error)
}

type backtestService struct {
	provider marketdata.Provider
	repo     storage.BarsRepository // nil when the bar cache is disabled
}

func NewBacktestService(provider marketdata.Provider, repo storage.BarsRepository) BacktestService {
	return &backtestService{provider: provider, repo: repo}
}

// Run fetches daily bars for [start, end], validates the series, and
// derives the weekly pullback metrics. The trailing in-progress week is
// trimmed. Propagates marketdata.ErrNoData when the symbol has no bars.
func (s *backtestService) Run(ctx context.Context, symbol string, start, end time.Time) (*models.BacktestReport, error) {
	bars, err := s.loadBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if err := pullback.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("bar series for %s: %w", symbol, err)
	}

	metrics := pullback.ComputeWeeklyMetrics(bars)
	metrics = pullback.TrimIncompleteWeek(metrics, timeNow())

	return &models.BacktestReport{
		Symbol:       symbol,
		Metrics:      metrics,
		AverageRatio: pullback.AverageRatio(metrics),
		Weeks:        len(metrics),
	}, nil
}

// WindowBars returns the daily bars inside the lookback window of the
// given reference day, backing the chart point-selection detail view.
// A window holding no trading days at all comes back empty rather than
// as an error; the provider reports such windows as no data.
func (s *backtestService) WindowBars(ctx context.Context, symbol string, referenceDay time.Time) ([]models.DailyBar, error) {
	t := pullback.DateOf(referenceDay)
	start := t.AddDate(0, 0, -8)
	end := t.AddDate(0, 0, -1)

	bars, err := s.loadBars(ctx, symbol, start, end)
	if err != nil {
		if errors.Is(err, marketdata.ErrNoData) {
			return nil, nil
		}
		return nil, err
	}
	return pullback.WindowBars(bars, t), nil
}

// loadBars serves from the Postgres cache when a previous fetch covered
// the range, otherwise fetches from the provider and (best effort)
// writes through to the cache.
func (s *backtestService) loadBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error) {
	if s.repo != nil {
		covered, err := s.repo.HasFetchForRange(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("check bar cache: %w", err)
		}
		if covered {
			bars, err := s.repo.GetBars(symbol, start, end)
			if err != nil {
				return nil, fmt.Errorf("read bar cache: %w", err)
			}
			if len(bars) > 0 {
				logger.L().Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("cache hit")
				return bars, nil
			}
			// Covered but empty: the range held no trading days when
			// fetched; treat as a provider miss and refetch.
		}
	}

	bars, err := s.provider.FetchDailyBars(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		// Cache write failures degrade to uncached operation.
		if err := s.repo.ReplaceBarsBatch(symbol, start, end, bars); err != nil {
			logger.L().Warn().Str("symbol", symbol).Err(err).Msg("bar cache write failed")
		} else if err := s.repo.UpsertFetchLog(symbol, start, end, len(bars)); err != nil {
			logger.L().Warn().Str("symbol", symbol).Err(err).Msg("fetch log update failed")
		}
	}

	return bars, nil
}
