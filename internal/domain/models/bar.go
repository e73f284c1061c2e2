package models

import "time"

// DailyBar is one day of OHLCV data for a symbol, as returned by the
// market-data provider. Date carries date-only precision (UTC midnight).
//
// Bars are immutable once fetched; a series is sorted ascending by Date
// with at most one bar per trading day.
type DailyBar struct {
	Symbol string    `json:"symbol" example:"SPY"`
	Date   time.Time `json:"date" example:"2023-10-27T00:00:00Z"`
	Open   float64   `json:"open" example:"414.19"`
	High   float64   `json:"high" example:"416.01"`
	Low    float64   `json:"low" example:"409.21"`
	Close  float64   `json:"close" example:"410.68"`
	Volume int64     `json:"volume" example:"114756800"`
}
