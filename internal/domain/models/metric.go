package models

import "time"

// WeeklyMetric is the pullback measurement for one calendar week.
//
// ReferenceDay is the last trading day of the week (T). The lookback
// window spans [T-8, T-1] in calendar days, so it may hold fewer than
// eight bars across weekends and holidays. WindowMax is the highest
// daily high inside that window (H), WindowMaxDate the day it occurred,
// and PullbackRatio = (Close - H) / H.
//
// Weeks with an empty window, no bar on T, or H = 0 produce no metric
// at all rather than a zeroed entry.
//
// swagger:model WeeklyMetric
type WeeklyMetric struct {
	ReferenceDay  time.Time `json:"reference_day" example:"2023-10-27T00:00:00Z"`
	WindowStart   time.Time `json:"window_start" example:"2023-10-19T00:00:00Z"`
	WindowEnd     time.Time `json:"window_end" example:"2023-10-26T00:00:00Z"`
	WindowMax     float64   `json:"window_max" example:"430.16"`
	WindowMaxDate time.Time `json:"window_max_date" example:"2023-10-19T00:00:00Z"`
	Close         float64   `json:"close" example:"410.68"`
	PullbackRatio float64   `json:"pullback_ratio" example:"-0.0453"`
}

// BacktestReport is the full result of one backtest run for a symbol:
// the weekly metric series (ascending by reference day) plus the mean
// pullback ratio across the series.
type BacktestReport struct {
	Symbol       string         `json:"symbol" example:"SPY"`
	Metrics      []WeeklyMetric `json:"metrics"`
	AverageRatio float64        `json:"average_ratio" example:"-0.0112"`
	Weeks        int            `json:"weeks" example:"42"`
}
