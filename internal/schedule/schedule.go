package schedule

import (
	"time"
)

// Trigger yields the next firing time strictly after a given instant.
type Trigger interface {
	Next(after time.Time) time.Time
}

// EveryHours fires at minute 0 of every UTC hour divisible by N, the same
// instants as the cron expression "0 0 */N * * *".
type EveryHours struct {
	N int
}

func (e EveryHours) Next(after time.Time) time.Time {
	n := e.N
	if n <= 0 {
		n = 1
	}
	t := after.UTC().Truncate(time.Hour).Add(time.Hour)
	for i := 0; i < 24 && t.Hour()%n != 0; i++ {
		t = t.Add(time.Hour)
	}
	return t
}

// Every fires at a fixed interval from the previous firing.
type Every struct {
	Interval time.Duration
}

func (e Every) Next(after time.Time) time.Time {
	if e.Interval <= 0 {
		return after.Add(time.Minute)
	}
	return after.Add(e.Interval)
}

// SkipQuietHours wraps t so firings inside the given UTC hours are skipped.
func SkipQuietHours(t Trigger, quietHours []int) Trigger {
	if len(quietHours) == 0 {
		return t
	}
	q := quiet{inner: t, hours: make(map[int]bool, len(quietHours))}
	for _, h := range quietHours {
		q.hours[h] = true
	}
	return q
}

type quiet struct {
	inner Trigger
	hours map[int]bool
}

func (q quiet) Next(after time.Time) time.Time {
	cand := q.inner.Next(after)
	for i := 0; i < 48*60 && q.hours[cand.UTC().Hour()]; i++ { // search up to 2 days of minutes
		cand = q.inner.Next(cand)
	}
	return cand
}

// Upcoming lists the next n firings of t after now.
func Upcoming(t Trigger, now time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		now = t.Next(now)
		out = append(out, now)
	}
	return out
}
