package scheduler

import "time"

const (
	// maxScanSteps bounds both slot scans to roughly twelve hours of
	// 15-minute steps. It is a search bound, not a retry policy.
	maxScanSteps = 49

	scanStep = 15 * time.Minute
)

// findBackwardSlot returns the latest grid-aligned slot of length dur
// that still ends at or before deadline, scanning backward from the
// deadline. The third return value is false when the search is
// exhausted or the candidate end regresses to the window start.
func findBackwardSlot(deadline time.Time, dur time.Duration, occupied []interval, winStart time.Time) (time.Time, time.Time, bool) {
	end := RoundDown(deadline)
	for range maxScanSteps {
		start := RoundUp(end.Add(-dur))
		end = start.Add(dur)
		if fits(start, end, occupied, winStart, deadline) {
			return start, end, true
		}
		end = end.Add(-scanStep)
		if !end.After(winStart) {
			break
		}
	}
	return time.Time{}, time.Time{}, false
}

// findForwardSlot returns the earliest grid-aligned slot of length dur
// at or after cursor. The third return value is false when the scan
// bound is exhausted or the candidate no longer fits before winEnd.
func findForwardSlot(cursor time.Time, dur time.Duration, occupied []interval, winStart, winEnd time.Time) (time.Time, time.Time, bool) {
	start := cursor
	if start.Before(winStart) {
		start = winStart
	}
	start = RoundUp(start)

	for range maxScanSteps {
		end := start.Add(dur)
		if end.After(winEnd) {
			break
		}
		if fits(start, end, occupied, winStart, winEnd) {
			return start, end, true
		}
		start = start.Add(scanStep)
	}
	return time.Time{}, time.Time{}, false
}
