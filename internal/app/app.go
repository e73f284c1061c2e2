package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bradchang-ux/stock-backtest/config"
	"github.com/bradchang-ux/stock-backtest/internal/api"
	"github.com/bradchang-ux/stock-backtest/internal/marketdata"
	"github.com/bradchang-ux/stock-backtest/internal/service"
	"github.com/bradchang-ux/stock-backtest/internal/storage"
)

// InitializeApp wires the application together: market-data provider,
// optional Postgres bar cache, backtest service, HTTP handlers, and
// health probes. It returns the configured router and a cleanup
// function for graceful shutdown.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	provider := marketdata.NewYahooClient(
		cfg.MarketData.BaseURL,
		time.Duration(cfg.MarketData.TimeoutSeconds)*time.Second,
	)

	var (
		repo    storage.BarsRepository
		dbPing  func() error
		cleanup = func() {}
	)

	if cfg.Cache.Enabled {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewBarsRepository(db)
		dbPing = db.Ping
		cleanup = func() { _ = db.Close() }
	}

	svc := service.NewBacktestService(provider, repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(dbPing)
	healthHandler.Register(router)

	return router, cleanup, nil
}
