package engage

import (
	"sync"
	"time"
)

// Quota is an in-memory daily post budget. The day boundary is the UTC
// calendar date.
type Quota struct {
	mu        sync.Mutex
	maxPerDay int
	count     int
	day       time.Time
	nowFn     func() time.Time
}

// NewQuota returns a tracker allowing maxPerDay posts per UTC day. A nil nowFn
// uses time.Now.
func NewQuota(maxPerDay int, nowFn func() time.Time) *Quota {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Quota{maxPerDay: maxPerDay, nowFn: nowFn, day: startOfDay(nowFn())}
}

// TryPost claims one slot of today's budget. It rolls the counter over when
// a later date begins and returns false once the budget is spent.
func (q *Quota) TryPost() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	// The day only moves forward; a stale or stepped-back clock reading
	// counts against the current day.
	if today := startOfDay(q.nowFn()); today.After(q.day) {
		q.day = today
		q.count = 0
	}
	if q.count >= q.maxPerDay {
		return false
	}
	q.count++
	return true
}

// QuotaSnapshot is a point-in-time copy of the tracker state.
type QuotaSnapshot struct {
	Day       time.Time
	Count     int
	MaxPerDay int
}

func (s QuotaSnapshot) Remaining() int {
	if s.Count >= s.MaxPerDay {
		return 0
	}
	return s.MaxPerDay - s.Count
}

func (q *Quota) Snapshot() QuotaSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuotaSnapshot{Day: q.day, Count: q.count, MaxPerDay: q.maxPerDay}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
