package scoring

import (
	"sort"
	"time"
)

// WindowState is where a timed test sits relative to the current time.
type WindowState string

const (
	Upcoming WindowState = "upcoming"
	Ongoing  WindowState = "ongoing"
	Closed   WindowState = "closed"
)

// WindowEnd returns the instant a test starting at start closes.
func WindowEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// Classify places now against the window [start, start+duration]. Both ends
// are inclusive. The result depends on now and must not be cached.
func Classify(now, start time.Time, durationMinutes int) WindowState {
	switch {
	case now.Before(start):
		return Upcoming
	case now.After(WindowEnd(start, durationMinutes)):
		return Closed
	default:
		return Ongoing
	}
}

// SortByStart orders items ascending by the start time returned by startOf.
// Equal starts keep their input order.
func SortByStart[T any](items []T, startOf func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return startOf(items[i]).Before(startOf(items[j]))
	})
}
