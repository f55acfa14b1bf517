package services

import (
	"math"
	"time"
)

// Base and per-streak-day bonus XP for a single check-in.
const (
	BaseCheckInXP   = 10
	StreakBonusXP   = 2
	streakGraceDays = 1
)

// startOfDay strips the time-of-day in the timestamp's own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalculateStreak returns the consecutive-day streak over the given check-in
// timestamps, evaluated at now. Multiple check-ins on one calendar day count
// once. A streak must reach today or yesterday to still be alive: missing
// today is tolerated (one-day grace) but missing both breaks the chain and
// the result is 0. Counting walks backward one day at a time from the most
// recent present anchor until a gap.
func CalculateStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		days[startOfDay(d.In(now.Location()))] = true
	}

	anchor := startOfDay(now)
	if !days[anchor] {
		anchor = anchor.AddDate(0, 0, -streakGraceDays)
		if !days[anchor] {
			return 0
		}
	}

	streak := 0
	for day := anchor; days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LevelForXP maps cumulative XP to a level: floor((xp/100)^(2/3)) + 1.
// Monotonic non-decreasing, always >= 1. Cube root first keeps exact cubes
// exact (2700 XP lands precisely on level 10).
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	c := math.Cbrt(float64(xp) / 100.0)
	return int(math.Floor(c*c)) + 1
}

// XPForCheckIn returns the XP a single check-in is worth given the goal's
// streak as it stood before the check-in. Longer streaks make each check-in
// worth more.
func XPForCheckIn(streak int) int {
	if streak < 0 {
		streak = 0
	}
	return BaseCheckInXP + StreakBonusXP*streak
}
