package scheduler

import (
	"sort"
	"time"
)

// interval is a half-open busy range [start, end).
type interval struct {
	start time.Time
	end   time.Time
}

// fits reports whether [start, end) lies inside the window and overlaps
// nothing in occupied. Touching intervals do not count as overlapping.
func fits(start, end time.Time, occupied []interval, winStart, winEnd time.Time) bool {
	if start.Before(winStart) || end.After(winEnd) || !start.Before(end) {
		return false
	}
	for _, iv := range occupied {
		if start.Before(iv.end) && iv.start.Before(end) {
			return false
		}
	}
	return true
}

// withBreak appends the slot and its mandatory trailing break.
// The break length is fixed; the profile's configured break duration is
// deliberately not applied here.
func withBreak(occupied []interval, start, end time.Time) []interval {
	occupied = append(occupied, interval{start: start, end: end})
	return append(occupied, interval{start: end, end: end.Add(forcedBreak)})
}

// merge returns occupied sorted by start with overlapping or touching
// ranges fused into one. This is the canonical form the placers consume.
func merge(occupied []interval) []interval {
	if len(occupied) == 0 {
		return nil
	}

	occ := append([]interval(nil), occupied...)
	sort.Slice(occ, func(i, j int) bool { return occ[i].start.Before(occ[j].start) })

	out := occ[:1]
	for _, iv := range occ[1:] {
		last := &out[len(out)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}
