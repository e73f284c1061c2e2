package main

//
//  @title           stock-backtest API
//  @version         1.0
//  @description     Weekly pullback-ratio backtest service for daily stock data.
//  @termsOfService  https://github.com/bradchang-ux/stock-backtest
//  @contact.name    API Support
//  @contact.url     https://github.com/bradchang-ux/stock-backtest
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        backtest
//  @tag.description Weekly pullback backtest and lookback-window queries
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bradchang-ux/stock-backtest/config"
	_ "github.com/bradchang-ux/stock-backtest/docs" // swagger docs
	"github.com/bradchang-ux/stock-backtest/internal/app"
	"github.com/bradchang-ux/stock-backtest/internal/logger"
	"github.com/bradchang-ux/stock-backtest/internal/marketdata"
	"github.com/bradchang-ux/stock-backtest/internal/service"
	"github.com/bradchang-ux/stock-backtest/internal/storage"
)

const dateLayout = "2006-01-02"

// startServer starts the HTTP server in a goroutine and returns it so
// the caller can shut it down gracefully.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT/SIGTERM, then drains the server
// and runs the cleanup callback.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// parseDateFlag parses a YYYY-MM-DD flag value, falling back to def
// when empty.
func parseDateFlag(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	return time.Parse(dateLayout, value)
}

// main is the entry point of the stock-backtest application.
//
// Modes (selected via --mode flag):
//   - api:      Start the REST API (default).
//   - backtest: Run one backtest for --symbol and print the report as JSON.
//   - prefetch: Warm the Postgres bar cache for --symbols (requires CACHE_ENABLED).
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, backtest or prefetch")
	symbol := flag.String("symbol", "SPY", "Ticker symbol for backtest mode")
	symbols := flag.String("symbols", "", "Comma-separated symbols for prefetch mode")
	startStr := flag.String("start", "", "Start date YYYY-MM-DD (default: one year ago)")
	endStr := flag.String("end", "", "End date YYYY-MM-DD (default: today)")
	parallel := flag.Int("parallel", 0, "Concurrent symbol fetches in prefetch mode (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Refetch symbols even if the range is already cached")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	now := time.Now().UTC()
	start, err := parseDateFlag(*startStr, now.AddDate(-1, 0, 0))
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid --start date")
	}
	end, err := parseDateFlag(*endStr, now)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid --end date")
	}

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "backtest":
		// One-shot run; never touches the cache DB.
		provider := marketdata.NewYahooClient(
			config.AppConfig.MarketData.BaseURL,
			time.Duration(config.AppConfig.MarketData.TimeoutSeconds)*time.Second,
		)
		svc := service.NewBacktestService(provider, nil)

		report, err := svc.Run(ctx, strings.ToUpper(*symbol), start, end)
		if err != nil {
			logger.L().Fatal().Str("symbol", *symbol).Err(err).Msg("backtest failed")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.L().Fatal().Err(err).Msg("encode report")
		}

	case "prefetch":
		if !config.AppConfig.Cache.Enabled {
			logger.L().Fatal().Msg("prefetch requires CACHE_ENABLED=true")
		}

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		list := splitSymbols(*symbols)
		provider := marketdata.NewYahooClient(
			config.AppConfig.MarketData.BaseURL,
			time.Duration(config.AppConfig.MarketData.TimeoutSeconds)*time.Second,
		)
		repo := storage.NewBarsRepository(db)

		if err := service.PrefetchSymbols(ctx, provider, repo, list, start, end, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("prefetch failed")
		}
		logger.L().Info().Msg("prefetch completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// splitSymbols turns "spy, qqq" into ["SPY", "QQQ"].
func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
