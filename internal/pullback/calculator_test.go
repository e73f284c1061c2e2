package pullback

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// barsJan2024 is ten consecutive days starting Monday 2024-01-01 with
// the given highs; closes track the highs.
func barsJan2024(highs []float64) []models.DailyBar {
	out := make([]models.DailyBar, len(highs))
	for i, h := range highs {
		out[i] = models.DailyBar{
			Symbol: "SPY",
			Date:   day(2024, time.January, 1+i),
			Open:   h - 1,
			High:   h,
			Low:    h - 2,
			Close:  h,
			Volume: 1000,
		}
	}
	return out
}

func TestComputeWeeklyMetrics_KnownSeries(t *testing.T) {
	// Jan 1 2024 is a Monday, so Jan 1-7 and Jan 8-10 are two ISO weeks.
	bars := barsJan2024([]float64{10, 11, 12, 13, 14, 9, 10, 11, 12, 13})

	metrics := ComputeWeeklyMetrics(bars)
	if len(metrics) != 2 {
		t.Fatalf("want 2 metrics, got %d", len(metrics))
	}

	// Week 2: T = Jan 10, window [Jan 2, Jan 9], H = 14 (Jan 5), C = 13.
	m := metrics[1]
	if !m.ReferenceDay.Equal(day(2024, time.January, 10)) {
		t.Fatalf("reference day = %v", m.ReferenceDay)
	}
	if !m.WindowStart.Equal(day(2024, time.January, 2)) || !m.WindowEnd.Equal(day(2024, time.January, 9)) {
		t.Fatalf("window = [%v, %v]", m.WindowStart, m.WindowEnd)
	}
	if m.WindowMax != 14 {
		t.Fatalf("window max = %v, want 14", m.WindowMax)
	}
	if !m.WindowMaxDate.Equal(day(2024, time.January, 5)) {
		t.Fatalf("window max date = %v", m.WindowMaxDate)
	}
	want := (13.0 - 14.0) / 14.0
	if math.Abs(m.PullbackRatio-want) > 1e-12 {
		t.Fatalf("ratio = %v, want %v", m.PullbackRatio, want)
	}
}

func TestComputeWeeklyMetrics_WindowOffsets(t *testing.T) {
	bars := barsJan2024([]float64{10, 11, 12, 13, 14, 9, 10, 11, 12, 13})
	for _, m := range ComputeWeeklyMetrics(bars) {
		if got := m.ReferenceDay.Sub(m.WindowStart).Hours() / 24; got != 8 {
			t.Fatalf("window start offset = %v days, want 8", got)
		}
		if got := m.ReferenceDay.Sub(m.WindowEnd).Hours() / 24; got != 1 {
			t.Fatalf("window end offset = %v days, want 1", got)
		}
	}
}

func TestComputeWeeklyMetrics_SkipsAndEdges(t *testing.T) {
	cases := []struct {
		name string
		bars []models.DailyBar
		want int
	}{
		{name: "empty input", bars: nil, want: 0},
		{
			// A lone bar has nothing in its lookback window.
			name: "empty window skipped",
			bars: []models.DailyBar{{Date: day(2024, time.March, 13), High: 10, Close: 9}},
			want: 0,
		},
		{
			// Only a zero high in the window: no ratio may be emitted.
			name: "zero max skipped",
			bars: []models.DailyBar{
				{Date: day(2024, time.March, 12), High: 0, Close: 0},
				{Date: day(2024, time.March, 13), High: 10, Close: 9},
			},
			want: 0,
		},
		{
			name: "nonzero max emits",
			bars: []models.DailyBar{
				{Date: day(2024, time.March, 12), High: 8, Close: 8},
				{Date: day(2024, time.March, 13), High: 10, Close: 9},
			},
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeWeeklyMetrics(tc.bars)
			if len(got) != tc.want {
				t.Fatalf("want %d metrics, got %d: %+v", tc.want, len(got), got)
			}
		})
	}
}

func TestComputeWeeklyMetrics_Idempotent(t *testing.T) {
	bars := barsJan2024([]float64{10, 11, 12, 13, 14, 9, 10, 11, 12, 13})
	a := ComputeWeeklyMetrics(bars)
	b := ComputeWeeklyMetrics(bars)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs differ:\n%+v\n%+v", a, b)
	}
}

func TestComputeWeeklyMetrics_OutsideBarsIgnored(t *testing.T) {
	// A huge high just outside the window (on T itself and on T-9)
	// must not leak into the window max.
	bars := []models.DailyBar{
		{Date: day(2024, time.April, 1), High: 999, Close: 999}, // T-9 for Apr 10
		{Date: day(2024, time.April, 8), High: 50, Close: 50},
		{Date: day(2024, time.April, 9), High: 60, Close: 60},
		{Date: day(2024, time.April, 10), High: 500, Close: 55},
	}
	metrics := ComputeWeeklyMetrics(bars)

	var found bool
	for _, m := range metrics {
		if m.ReferenceDay.Equal(day(2024, time.April, 10)) {
			found = true
			if m.WindowMax != 60 {
				t.Fatalf("window max = %v, want 60", m.WindowMax)
			}
		}
	}
	if !found {
		t.Fatalf("no metric for Apr 10: %+v", metrics)
	}
}

func TestValidateBars(t *testing.T) {
	cases := []struct {
		name    string
		bars    []models.DailyBar
		wantErr bool
	}{
		{name: "empty", bars: nil, wantErr: false},
		{
			name: "ascending ok",
			bars: []models.DailyBar{
				{Date: day(2024, time.May, 1)},
				{Date: day(2024, time.May, 2)},
			},
			wantErr: false,
		},
		{
			name: "duplicate date",
			bars: []models.DailyBar{
				{Date: day(2024, time.May, 1)},
				{Date: day(2024, time.May, 1)},
			},
			wantErr: true,
		},
		{
			name: "out of order",
			bars: []models.DailyBar{
				{Date: day(2024, time.May, 2)},
				{Date: day(2024, time.May, 1)},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBars(tc.bars)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWindowBars(t *testing.T) {
	bars := barsJan2024([]float64{10, 11, 12, 13, 14, 9, 10, 11, 12, 13})

	got := WindowBars(bars, day(2024, time.January, 10))
	if len(got) != 8 {
		t.Fatalf("want 8 bars, got %d", len(got))
	}
	if !got[0].Date.Equal(day(2024, time.January, 2)) || !got[7].Date.Equal(day(2024, time.January, 9)) {
		t.Fatalf("window bounds wrong: first=%v last=%v", got[0].Date, got[7].Date)
	}

	if got := WindowBars(bars, day(2024, time.June, 1)); len(got) != 0 {
		t.Fatalf("expected empty window far from data, got %d", len(got))
	}
}

func TestTrimIncompleteWeek(t *testing.T) {
	metric := func(d time.Time) models.WeeklyMetric { return models.WeeklyMetric{ReferenceDay: d} }

	cases := []struct {
		name string
		last time.Time
		now  time.Time
		want int
	}{
		{
			name: "same iso week dropped",
			last: day(2024, time.July, 10), // Wed
			now:  day(2024, time.July, 12), // Fri same week
			want: 0,
		},
		{
			name: "recent midweek dropped",
			last: day(2024, time.July, 11), // Thu
			now:  day(2024, time.July, 15), // Mon next week
			want: 0,
		},
		{
			name: "completed friday kept",
			last: day(2024, time.July, 12), // Fri
			now:  day(2024, time.July, 16),
			want: 1,
		},
		{
			name: "old midweek kept",
			last: day(2024, time.July, 3), // Wed, long past
			now:  day(2024, time.July, 22),
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimIncompleteWeek([]models.WeeklyMetric{metric(tc.last)}, tc.now)
			if len(got) != tc.want {
				t.Fatalf("want %d metrics, got %d", tc.want, len(got))
			}
		})
	}

	if got := TrimIncompleteWeek(nil, day(2024, time.July, 16)); len(got) != 0 {
		t.Fatalf("nil input should stay empty")
	}
}

func TestAverageRatio(t *testing.T) {
	if got := AverageRatio(nil); got != 0 {
		t.Fatalf("empty average = %v, want 0", got)
	}
	ms := []models.WeeklyMetric{{PullbackRatio: -0.02}, {PullbackRatio: -0.04}}
	if got := AverageRatio(ms); math.Abs(got+0.03) > 1e-12 {
		t.Fatalf("average = %v, want -0.03", got)
	}
}
