package services

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestCalculateStreak_Empty(t *testing.T) {
	if got := CalculateStreak(nil, testNow); got != 0 {
		t.Errorf("expected 0 for empty history, got %d", got)
	}
}

func TestCalculateStreak_BrokenChain(t *testing.T) {
	// Neither today nor yesterday present: the streak is dead no matter how
	// long the old run was.
	dates := []time.Time{daysAgo(2), daysAgo(3), daysAgo(4), daysAgo(5)}
	if got := CalculateStreak(dates, testNow); got != 0 {
		t.Errorf("expected 0 for chain ending two days ago, got %d", got)
	}
}

func TestCalculateStreak_RunIncludingToday(t *testing.T) {
	dates := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}
	if got := CalculateStreak(dates, testNow); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}

	// A detached older run must not extend the current one.
	dates = append(dates, daysAgo(4), daysAgo(5))
	if got := CalculateStreak(dates, testNow); got != 3 {
		t.Errorf("expected gap at day 3 to stop the count, got %d", got)
	}
}

func TestCalculateStreak_GracePeriod(t *testing.T) {
	// No check-in yet today; yesterday anchors the count.
	dates := []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}
	if got := CalculateStreak(dates, testNow); got != 3 {
		t.Errorf("expected 3 via yesterday anchor, got %d", got)
	}
}

func TestCalculateStreak_DuplicateDaysCollapse(t *testing.T) {
	dates := []time.Time{
		daysAgo(0),
		daysAgo(0).Add(-6 * time.Hour),
		daysAgo(1),
		daysAgo(1).Add(2 * time.Hour),
	}
	if got := CalculateStreak(dates, testNow); got != 2 {
		t.Errorf("expected same-day check-ins to count once, got %d", got)
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{50, 1},
		{100, 2},
		{800, 5},
		{2700, 10},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := LevelForXP(0)
	if prev != 1 {
		t.Fatalf("LevelForXP(0) = %d, want 1", prev)
	}
	for xp := 1; xp <= 5000; xp++ {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		prev = level
	}
}

func TestXPForCheckIn(t *testing.T) {
	cases := []struct {
		streak int
		want   int
	}{
		{0, 10},
		{5, 20},
		{10, 30},
		{-1, 10},
	}
	for _, tc := range cases {
		if got := XPForCheckIn(tc.streak); got != tc.want {
			t.Errorf("XPForCheckIn(%d) = %d, want %d", tc.streak, got, tc.want)
		}
	}
}
