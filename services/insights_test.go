package services

import (
	"testing"

	"github.com/skillup-labs/skillup/models"
)

func TestAnalyzeBurnout_NoHistory(t *testing.T) {
	analysis := AnalyzeBurnout(nil, testNow)
	if analysis.Risk != RiskNone {
		t.Errorf("risk = %q, want %q", analysis.Risk, RiskNone)
	}
	if analysis.LastCheckIn != nil {
		t.Error("expected no last check-in")
	}
	if len(analysis.Suggestions) == 0 {
		t.Error("expected onboarding suggestions")
	}
}

func TestAnalyzeBurnout_InactivityRisk(t *testing.T) {
	cases := []struct {
		name         string
		daysInactive int
		want         string
	}{
		{"active today", 0, RiskLow},
		{"two days quiet", 2, RiskLow},
		{"three days quiet", 3, RiskMedium},
		{"a week quiet", 7, RiskHigh},
		{"two weeks quiet", 14, RiskHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkIns := []models.CheckIn{{Date: daysAgo(tc.daysInactive), HoursStudied: 2}}
			analysis := AnalyzeBurnout(checkIns, testNow)
			if analysis.Risk != tc.want {
				t.Errorf("risk = %q, want %q", analysis.Risk, tc.want)
			}
			if analysis.DaysSinceCheckIn != tc.daysInactive {
				t.Errorf("days since = %d, want %d", analysis.DaysSinceCheckIn, tc.daysInactive)
			}
		})
	}
}

func TestAnalyzeBurnout_Overwork(t *testing.T) {
	// Checked in today but the last three sessions average above the healthy
	// ceiling.
	checkIns := []models.CheckIn{
		{Date: daysAgo(2), HoursStudied: 8},
		{Date: daysAgo(1), HoursStudied: 9},
		{Date: daysAgo(0), HoursStudied: 7},
	}
	analysis := AnalyzeBurnout(checkIns, testNow)
	if analysis.Risk != RiskMedium {
		t.Errorf("risk = %q, want %q", analysis.Risk, RiskMedium)
	}
	if !analysis.RecommendedBreak {
		t.Error("expected a recommended break for overwork")
	}
}

func TestAnalyzeBurnout_AverageHours(t *testing.T) {
	checkIns := []models.CheckIn{
		{Date: daysAgo(1), HoursStudied: 2},
		{Date: daysAgo(0), HoursStudied: 4},
	}
	analysis := AnalyzeBurnout(checkIns, testNow)
	if analysis.AverageHoursPerDay != 3 {
		t.Errorf("average hours = %v, want 3", analysis.AverageHoursPerDay)
	}
	if analysis.TotalCheckIns != 2 {
		t.Errorf("total check-ins = %d, want 2", analysis.TotalCheckIns)
	}
}
