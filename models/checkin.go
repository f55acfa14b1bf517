package models

import "time"

// CheckIn records one day of study against a goal. XPGained is computed once
// at creation and never recomputed. Day holds the calendar day of Date in
// YYYY-MM-DD form; the unique index on (goal_id, day) is what makes the
// one-check-in-per-goal-per-day rule hold under concurrent requests, the
// handler-level existence check only provides the friendly error.
type CheckIn struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	GoalID          uint      `gorm:"not null;uniqueIndex:uniq_goal_day" json:"goal_id"`
	Date            time.Time `gorm:"index;not null" json:"date"`
	Day             string    `gorm:"size:10;not null;uniqueIndex:uniq_goal_day" json:"-"`
	TaskDescription string    `gorm:"size:512;not null" json:"task_description"`
	HoursStudied    float64   `gorm:"not null" json:"hours_studied"`
	XPGained        int       `gorm:"not null" json:"xp_gained"`
	CreatedAt       time.Time `json:"created_at"`
}

// DayFormat is the calendar-day layout used for the uniqueness column.
const DayFormat = "2006-01-02"
