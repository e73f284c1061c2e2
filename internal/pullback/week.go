package pullback

import "time"

// DateOf truncates a timestamp to date-only precision in UTC. All window
// comparisons operate on these values so that intraday timestamps from a
// provider cannot shift a bar across a window boundary.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sameISOWeek reports whether two timestamps fall in the same ISO 8601
// week (Monday start).
func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.UTC().ISOWeek()
	by, bw := b.UTC().ISOWeek()
	return ay == by && aw == bw
}
