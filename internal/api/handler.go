package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bradchang-ux/stock-backtest/internal/domain/dto"
	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
	"github.com/bradchang-ux/stock-backtest/internal/marketdata"
	"github.com/bradchang-ux/stock-backtest/internal/service"
)

const dateLayout = "2006-01-02"

// Handler maps HTTP requests onto the backtest service: it validates
// query parameters, invokes the service, and translates results and
// error conditions into JSON responses.
type Handler struct {
	svc service.BacktestService
}

func NewHandler(svc service.BacktestService) *Handler {
	return &Handler{svc: svc}
}

// GetBacktest handles GET /api/v1/backtest requests.
//
// GetBacktest godoc
// @Summary      Run a weekly pullback backtest
// @Description  Fetches daily bars for the symbol and returns the weekly pullback-ratio series with its average
// @Tags         backtest
// @Produce      json
// @Param        symbol  query     string  true   "Ticker symbol" example(SPY)
// @Param        start   query     string  false  "Start date YYYY-MM-DD (default: one year ago)" example(2023-01-01)
// @Param        end     query     string  false  "End date YYYY-MM-DD (default: today)" example(2023-12-31)
// @Success      200     {object}  dto.BacktestResponse   "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "No data for symbol"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/backtest [get]
func (h *Handler) GetBacktest(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	now := time.Now().UTC()
	start := now.AddDate(-1, 0, 0)
	end := now

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid start format, expected YYYY-MM-DD", err))
			return
		}
		start = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid end format, expected YYYY-MM-DD", err))
			return
		}
		end = parsed
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("end must not precede start", nil))
		return
	}

	report, err := h.svc.Run(c.Request.Context(), symbol, start, end)
	if err != nil {
		if errors.Is(err, marketdata.ErrNoData) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data available for symbol", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("backtest failed", err))
		return
	}

	c.JSON(http.StatusOK, toBacktestResponse(report))
}

// GetWindow handles GET /api/v1/backtest/window requests: the daily
// bars inside the lookback window of one reference day, backing the
// chart's point-selection detail view.
//
// GetWindow godoc
// @Summary      Get lookback-window bars for a reference day
// @Description  Returns the daily bars in the [T-8, T-1] calendar window of the given reference day
// @Tags         backtest
// @Produce      json
// @Param        symbol  query     string  true  "Ticker symbol" example(SPY)
// @Param        date    query     string  true  "Reference day YYYY-MM-DD" example(2023-10-27)
// @Success      200     {object}  dto.WindowResponse    "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse     "No data for symbol"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/backtest/window [get]
func (h *Handler) GetWindow(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}
	ref, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date format, expected YYYY-MM-DD", err))
		return
	}

	bars, err := h.svc.WindowBars(c.Request.Context(), symbol, ref)
	if err != nil {
		if errors.Is(err, marketdata.ErrNoData) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data available for symbol", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("window lookup failed", err))
		return
	}

	resp := dto.WindowResponse{
		Symbol:       symbol,
		ReferenceDay: dto.DateOnly(ref),
		WindowStart:  dto.DateOnly(ref.AddDate(0, 0, -8)),
		WindowEnd:    dto.DateOnly(ref.AddDate(0, 0, -1)),
		Bars:         make([]dto.DailyBarResponse, 0, len(bars)),
	}
	for _, b := range bars {
		resp.Bars = append(resp.Bars, dto.DailyBarResponse{
			Date:   dto.DateOnly(b.Date),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func toBacktestResponse(report *models.BacktestReport) dto.BacktestResponse {
	resp := dto.BacktestResponse{
		Symbol:       report.Symbol,
		Weeks:        report.Weeks,
		AverageRatio: report.AverageRatio,
		Metrics:      make([]dto.WeeklyMetricResponse, 0, len(report.Metrics)),
	}
	for _, m := range report.Metrics {
		resp.Metrics = append(resp.Metrics, dto.WeeklyMetricResponse{
			ReferenceDay:  dto.DateOnly(m.ReferenceDay),
			WindowStart:   dto.DateOnly(m.WindowStart),
			WindowEnd:     dto.DateOnly(m.WindowEnd),
			WindowMax:     m.WindowMax,
			WindowMaxDate: dto.DateOnly(m.WindowMaxDate),
			Close:         m.Close,
			PullbackRatio: m.PullbackRatio,
		})
	}
	return resp
}
