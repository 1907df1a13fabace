package scheduler

import (
	"testing"
	"time"
)

func TestRoundUp(t *testing.T) {
	tests := []struct {
		input time.Time
		want  string
	}{
		{time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local), "09:00"},
		{time.Date(2025, 1, 6, 9, 1, 0, 0, time.Local), "09:15"},
		{time.Date(2025, 1, 6, 9, 14, 0, 0, time.Local), "09:15"},
		{time.Date(2025, 1, 6, 9, 15, 0, 0, time.Local), "09:15"},
		{time.Date(2025, 1, 6, 9, 16, 0, 0, time.Local), "09:30"},
		{time.Date(2025, 1, 6, 9, 35, 0, 0, time.Local), "09:45"},
		{time.Date(2025, 1, 6, 9, 46, 0, 0, time.Local), "10:00"},
		{time.Date(2025, 1, 6, 9, 0, 30, 0, time.Local), "09:00"}, // seconds dropped
		{time.Date(2025, 1, 6, 23, 50, 0, 0, time.Local), "00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.input.Format("15:04:05"), func(t *testing.T) {
			got := RoundUp(tc.input).Format("15:04")
			if got != tc.want {
				t.Errorf("RoundUp = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRoundDown(t *testing.T) {
	tests := []struct {
		input time.Time
		want  string
	}{
		{time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local), "09:00"},
		{time.Date(2025, 1, 6, 9, 14, 0, 0, time.Local), "09:00"},
		{time.Date(2025, 1, 6, 9, 15, 0, 0, time.Local), "09:15"},
		{time.Date(2025, 1, 6, 9, 29, 0, 0, time.Local), "09:15"},
		{time.Date(2025, 1, 6, 9, 44, 0, 0, time.Local), "09:30"},
		{time.Date(2025, 1, 6, 9, 59, 0, 0, time.Local), "09:45"},
		{time.Date(2025, 1, 6, 9, 45, 59, 0, time.Local), "09:45"},
	}

	for _, tc := range tests {
		t.Run(tc.input.Format("15:04:05"), func(t *testing.T) {
			got := RoundDown(tc.input).Format("15:04")
			if got != tc.want {
				t.Errorf("RoundDown = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRoundUpIdempotent(t *testing.T) {
	for h := 8; h < 12; h++ {
		for _, m := range []int{0, 15, 30, 45} {
			in := time.Date(2025, 1, 6, h, m, 0, 0, time.Local)
			if got := RoundUp(in); !got.Equal(in) {
				t.Errorf("RoundUp(%s) = %s, want unchanged", in.Format("15:04"), got.Format("15:04"))
			}
			if got := RoundDown(in); !got.Equal(in) {
				t.Errorf("RoundDown(%s) = %s, want unchanged", in.Format("15:04"), got.Format("15:04"))
			}
		}
	}
}
