package services

import (
	"time"

	"github.com/skillup-labs/skillup/models"
)

// WeeklyXPDays is the size of the charting window.
const WeeklyXPDays = 7

// DailyXP is one chart bucket: a weekday label and the XP earned that day.
type DailyXP struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

// WeeklyWindowStart returns the start of the 7-day window [today-6, today].
func WeeklyWindowStart(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -(WeeklyXPDays - 1))
}

// BucketWeeklyXP folds check-ins into per-day XP totals over the last seven
// calendar days ending at now. The result always has exactly seven entries in
// ascending date order; days without check-ins stay at zero, check-ins outside
// the window are ignored.
func BucketWeeklyXP(checkIns []models.CheckIn, now time.Time) []DailyXP {
	start := WeeklyWindowStart(now)

	totals := make(map[string]int, WeeklyXPDays)
	for _, ci := range checkIns {
		day := startOfDay(ci.Date.In(now.Location()))
		if day.Before(start) || day.After(startOfDay(now)) {
			continue
		}
		totals[day.Format(models.DayFormat)] += ci.XPGained
	}

	buckets := make([]DailyXP, 0, WeeklyXPDays)
	for i := 0; i < WeeklyXPDays; i++ {
		day := start.AddDate(0, 0, i)
		buckets = append(buckets, DailyXP{
			Day: day.Format("Mon"),
			XP:  totals[day.Format(models.DayFormat)],
		})
	}
	return buckets
}
