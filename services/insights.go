package services

import (
	"sort"
	"time"

	"github.com/skillup-labs/skillup/models"
)

// Burnout risk levels. RiskNone means the user has no check-in history yet.
const (
	RiskNone   = "None"
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Burnout thresholds: a week of silence is high risk, three days is medium,
// and averaging more than six hours over the last three sessions reads as
// overwork.
const (
	burnoutHighAfterDays   = 7
	burnoutMediumAfterDays = 3
	maxHealthyHours        = 6.0
	recentSessionWindow    = 3
	averageHoursWindow     = 7
)

// BurnoutAnalysis summarizes a user's recent study pattern.
type BurnoutAnalysis struct {
	Risk               string   `json:"risk"`
	LastCheckIn        *string  `json:"last_check_in"`
	DaysSinceCheckIn   int      `json:"days_since_check_in"`
	TotalCheckIns      int      `json:"total_check_ins"`
	AverageHoursPerDay float64  `json:"average_hours_per_day"`
	Suggestions        []string `json:"suggestions"`
	RecommendedBreak   bool     `json:"recommended_break"`
}

// AnalyzeBurnout inspects a user's check-ins, oldest or newest first, and
// grades the burnout risk from inactivity gaps and overwork.
func AnalyzeBurnout(checkIns []models.CheckIn, now time.Time) BurnoutAnalysis {
	if len(checkIns) == 0 {
		return BurnoutAnalysis{
			Risk: RiskNone,
			Suggestions: []string{
				"Welcome! You haven't started yet.",
				"Begin with your first check-in to start tracking your journey.",
				"Set a goal and log your first task today!",
			},
		}
	}

	sorted := make([]models.CheckIn, len(checkIns))
	copy(sorted, checkIns)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	last := sorted[len(sorted)-1].Date
	daysInactive := int(startOfDay(now).Sub(startOfDay(last.In(now.Location()))).Hours() / 24)
	if daysInactive < 0 {
		daysInactive = 0
	}

	risk := RiskLow
	overworked := recentAverageHours(sorted, recentSessionWindow) > maxHealthyHours
	switch {
	case daysInactive >= burnoutHighAfterDays:
		risk = RiskHigh
	case daysInactive >= burnoutMediumAfterDays:
		risk = RiskMedium
	case overworked:
		risk = RiskMedium
	}

	lastStr := last.Format(time.RFC3339)
	return BurnoutAnalysis{
		Risk:               risk,
		LastCheckIn:        &lastStr,
		DaysSinceCheckIn:   daysInactive,
		TotalCheckIns:      len(sorted),
		AverageHoursPerDay: recentAverageHours(sorted, averageHoursWindow),
		Suggestions:        burnoutSuggestions(risk, daysInactive, overworked),
		RecommendedBreak:   risk == RiskHigh || overworked,
	}
}

// recentAverageHours averages hoursStudied over the last n check-ins.
func recentAverageHours(sorted []models.CheckIn, n int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) < n {
		n = len(sorted)
	}
	total := 0.0
	for _, ci := range sorted[len(sorted)-n:] {
		total += ci.HoursStudied
	}
	return total / float64(n)
}

func burnoutSuggestions(risk string, daysInactive int, overworked bool) []string {
	switch risk {
	case RiskHigh:
		if daysInactive >= 14 {
			return []string{
				"You've been away for a while. Start with just 15 minutes today.",
				"Choose your easiest goal to rebuild momentum.",
				"Don't pressure yourself - small steps count!",
			}
		}
		return []string{
			"You haven't checked in for a week. Time to get back on track!",
			"Start with a small, achievable task today.",
			"Review your goals - maybe they need adjustment.",
		}
	case RiskMedium:
		if overworked {
			return []string{
				"You're studying too much! Take a day off to rest.",
				"Limit your study sessions to 3-4 hours maximum.",
				"Remember: consistent small efforts beat burnout.",
			}
		}
		return []string{
			"You've missed a few days. Let's get back to it!",
			"Try studying for just 30 minutes today.",
			"Set a daily reminder to check in.",
		}
	default:
		return []string{
			"Great job staying consistent! Keep it up!",
			"You're building a good study habit.",
			"Consider setting a new challenge for yourself.",
		}
	}
}
