package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
)

// DefaultBaseURL is the public Yahoo Finance chart API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient implements Provider against the Yahoo Finance v8 chart API.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

// NewYahooClient builds a client for the given base URL (DefaultBaseURL
// in production; tests point it at an httptest server).
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
// Price fields are decoded as pointers because Yahoo emits JSON nulls
// for non-trading days inside the range.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars downloads daily bars for [start, end] and returns them
// ascending by date. Null bars (holidays) are dropped. Returns ErrNoData
// when the API reports an unknown symbol or an empty result.
func (y *YahooClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error) {
	// period2 is exclusive on Yahoo's side; push it one day past end so
	// the final bar is included.
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		y.baseURL, url.PathEscape(symbol), start.Unix(), end.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chart read: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart status %d: %s", resp.StatusCode, string(body))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 ||
		len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]models.DailyBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := deref(quote.Open, i)
		h := deref(quote.High, i)
		l := deref(quote.Low, i)
		c := deref(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bar
		}
		bars = append(bars, models.DailyBar{
			Symbol: symbol,
			Date:   dateOnly(time.Unix(ts, 0).UTC()),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: derefInt(quote.Volume, i),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func deref(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func derefInt(vals []*int64, i int) int64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
