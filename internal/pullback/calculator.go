// Package pullback implements the weekly pullback-ratio calculation.
//
// The input is an ascending series of daily bars. Bars are grouped into
// ISO weeks (Monday through Sunday); within each week the reference day
// T is the last trading day present. The lookback window spans the
// calendar days [T-8, T-1], H is the highest daily high inside it, and
// the pullback ratio is (close(T) - H) / H.
package pullback

import (
	"fmt"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
)

// Lookback window bounds relative to the reference day, in calendar days.
const (
	windowStartOffset = -8
	windowEndOffset   = -1
)

// ValidateBars checks that the series is strictly ascending by date with
// no duplicate days. Providers return sorted data, so a violation means
// a corrupted cache or a bug upstream and the run must fail rather than
// silently pick a wrong window.
func ValidateBars(bars []models.DailyBar) error {
	for i := 1; i < len(bars); i++ {
		prev := DateOf(bars[i-1].Date)
		cur := DateOf(bars[i].Date)
		if cur.Equal(prev) {
			return fmt.Errorf("duplicate bar date %s at index %d", cur.Format("2006-01-02"), i)
		}
		if cur.Before(prev) {
			return fmt.Errorf("bars out of order: %s follows %s at index %d",
				cur.Format("2006-01-02"), prev.Format("2006-01-02"), i)
		}
	}
	return nil
}

// ComputeWeeklyMetrics transforms a validated daily series into the
// weekly metric series, ascending by reference day.
//
// Weeks are skipped (no entry emitted) when the lookback window holds no
// bars or when the window max is zero; the reference day itself always
// exists because it is chosen from the bars present in the week.
// The transformation is pure: same input, same output.
func ComputeWeeklyMetrics(bars []models.DailyBar) []models.WeeklyMetric {
	if len(bars) == 0 {
		return nil
	}

	metrics := make([]models.WeeklyMetric, 0, len(bars)/4)

	// Bars are ascending, so each ISO week forms a contiguous run.
	for start := 0; start < len(bars); {
		end := start + 1
		for end < len(bars) && sameISOWeek(bars[start].Date, bars[end].Date) {
			end++
		}

		// Reference day T: last trading day present in the week.
		ref := bars[end-1]
		t := DateOf(ref.Date)
		winStart := t.AddDate(0, 0, windowStartOffset)
		winEnd := t.AddDate(0, 0, windowEndOffset)

		if m, ok := windowMetric(bars, ref, winStart, winEnd); ok {
			metrics = append(metrics, m)
		}
		start = end
	}

	return metrics
}

// windowMetric computes the metric for one reference day, reporting
// ok=false when the window is empty or its max is zero.
func windowMetric(bars []models.DailyBar, ref models.DailyBar, winStart, winEnd time.Time) (models.WeeklyMetric, bool) {
	var (
		found   bool
		max     float64
		maxDate time.Time
	)
	for _, b := range bars {
		d := DateOf(b.Date)
		if d.Before(winStart) || d.After(winEnd) {
			continue
		}
		if !found || b.High > max {
			max = b.High
			maxDate = d
		}
		found = true
	}
	if !found || max == 0 {
		return models.WeeklyMetric{}, false
	}

	return models.WeeklyMetric{
		ReferenceDay:  DateOf(ref.Date),
		WindowStart:   winStart,
		WindowEnd:     winEnd,
		WindowMax:     max,
		WindowMaxDate: maxDate,
		Close:         ref.Close,
		PullbackRatio: (ref.Close - max) / max,
	}, true
}

// WindowBars returns the daily bars falling inside the lookback window
// of the given reference day. It backs the chart's point-selection
// detail view as a plain lookup.
func WindowBars(bars []models.DailyBar, referenceDay time.Time) []models.DailyBar {
	t := DateOf(referenceDay)
	winStart := t.AddDate(0, 0, windowStartOffset)
	winEnd := t.AddDate(0, 0, windowEndOffset)

	var out []models.DailyBar
	for _, b := range bars {
		d := DateOf(b.Date)
		if !d.Before(winStart) && !d.After(winEnd) {
			out = append(out, b)
		}
	}
	return out
}

// TrimIncompleteWeek drops the trailing metric when its week is still in
// progress at the given time: either the reference day sits in the
// current ISO week, or it is less than seven days old and falls on a
// Monday through Thursday (a week that ended mid-week only because data
// ran out).
func TrimIncompleteWeek(metrics []models.WeeklyMetric, now time.Time) []models.WeeklyMetric {
	if len(metrics) == 0 {
		return metrics
	}
	last := metrics[len(metrics)-1].ReferenceDay
	today := DateOf(now)

	recent := today.Sub(DateOf(last)).Hours() < 7*24
	midWeek := last.Weekday() >= time.Monday && last.Weekday() <= time.Thursday

	if sameISOWeek(last, today) || (recent && midWeek) {
		return metrics[:len(metrics)-1]
	}
	return metrics
}

// AverageRatio returns the mean pullback ratio of the series, or zero
// for an empty series.
func AverageRatio(metrics []models.WeeklyMetric) float64 {
	if len(metrics) == 0 {
		return 0
	}
	var sum float64
	for _, m := range metrics {
		sum += m.PullbackRatio
	}
	return sum / float64(len(metrics))
}
