package dto

import "time"

// WeeklyMetricResponse is one row of the backtest result as exposed by
// the API. Dates are formatted as YYYY-MM-DD since the series carries
// date-only precision.
type WeeklyMetricResponse struct {
	ReferenceDay  string  `json:"reference_day" example:"2023-10-27"`
	WindowStart   string  `json:"window_start" example:"2023-10-19"`
	WindowEnd     string  `json:"window_end" example:"2023-10-26"`
	WindowMax     float64 `json:"window_max" example:"430.16"`
	WindowMaxDate string  `json:"window_max_date" example:"2023-10-19"`
	Close         float64 `json:"close" example:"410.68"`
	PullbackRatio float64 `json:"pullback_ratio" example:"-0.0453"`
}

// BacktestResponse is the JSON body of GET /api/v1/backtest.
//
// Fields mirror models.BacktestReport but stay decoupled from it so the
// API contract can evolve independently of the domain model.
type BacktestResponse struct {
	Symbol       string                 `json:"symbol" example:"SPY"`
	Weeks        int                    `json:"weeks" example:"42"`
	AverageRatio float64                `json:"average_ratio" example:"-0.0112"`
	Metrics      []WeeklyMetricResponse `json:"metrics"`
}

// DailyBarResponse is one OHLCV row in a lookback-window detail view.
type DailyBarResponse struct {
	Date   string  `json:"date" example:"2023-10-19"`
	Open   float64 `json:"open" example:"421.86"`
	High   float64 `json:"high" example:"430.16"`
	Low    float64 `json:"low" example:"420.18"`
	Close  float64 `json:"close" example:"421.19"`
	Volume int64   `json:"volume" example:"98231400"`
}

// WindowResponse is the JSON body of GET /api/v1/backtest/window: the
// daily bars inside the lookback window of one reference day.
type WindowResponse struct {
	Symbol       string             `json:"symbol" example:"SPY"`
	ReferenceDay string             `json:"reference_day" example:"2023-10-27"`
	WindowStart  string             `json:"window_start" example:"2023-10-19"`
	WindowEnd    string             `json:"window_end" example:"2023-10-26"`
	Bars         []DailyBarResponse `json:"bars"`
}

// DateOnly formats a timestamp as YYYY-MM-DD for API output.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
