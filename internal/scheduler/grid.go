package scheduler

import "time"

// gridMinutes are the quarter-hour marks all slot boundaries snap to.
var gridMinutes = [...]int{0, 15, 30, 45}

// RoundUp snaps t to the nearest grid mark at or after it.
// Quantizing an already-quantized timestamp returns it unchanged.
func RoundUp(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	m := t.Minute()
	for _, k := range gridMinutes {
		if m <= k {
			return t.Add(time.Duration(k-m) * time.Minute)
		}
	}
	// Past :45, roll to the next hour's :00.
	return t.Add(time.Duration(60-m) * time.Minute)
}

// RoundDown snaps t to the nearest grid mark at or before it.
func RoundDown(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	m := t.Minute()
	for i := len(gridMinutes) - 1; i >= 0; i-- {
		if k := gridMinutes[i]; k <= m {
			return t.Add(-time.Duration(m-k) * time.Minute)
		}
	}
	return t // unreachable: the grid contains :00
}
