package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/skillup-labs/skillup/models"
	"github.com/skillup-labs/skillup/utils"
)

// Badge is a static catalog entry. Users hold badges by id; the catalog is
// fixed at compile time and has no lifecycle of its own.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog lists every badge the system can award, in display order.
var Catalog = []Badge{
	{ID: "streak-3", Name: "On a Roll", Description: "Maintain a 3-day streak."},
	{ID: "streak-7", Name: "Committed Learner", Description: "Maintain a 7-day streak."},
	{ID: "streak-30", Name: "Habit Builder", Description: "Maintain a 30-day streak."},
	{ID: "goal-1", Name: "First Goal Down", Description: "Complete your first learning goal."},
	{ID: "goal-5", Name: "Goal Getter", Description: "Complete 5 learning goals."},
	{ID: "level-5", Name: "Level Up", Description: "Reach Level 5."},
	{ID: "level-10", Name: "Skilled Developer", Description: "Reach Level 10."},
}

// BadgeByID resolves a catalog entry; ok is false for unknown ids.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// ResolveBadges maps stored ids to catalog entries, dropping ids that no
// longer exist in the catalog.
func ResolveBadges(ids []string) []Badge {
	badges := make([]Badge, 0, len(ids))
	for _, id := range ids {
		if b, ok := BadgeByID(id); ok {
			badges = append(badges, b)
		}
	}
	return badges
}

// badgeThreshold is one row of the award table.
type badgeThreshold struct {
	id    string
	value int
}

var (
	levelThresholds  = []badgeThreshold{{"level-5", 5}, {"level-10", 10}}
	goalThresholds   = []badgeThreshold{{"goal-1", 1}, {"goal-5", 5}}
	streakThresholds = []badgeThreshold{{"streak-3", 3}, {"streak-7", 7}, {"streak-30", 30}}
)

// EarnedBadgeIDs evaluates the threshold table against the user's current
// level, completed-goal count and best streak, returning ids not already in
// held. Pure and idempotent: a second run with the same inputs yields nothing.
func EarnedBadgeIDs(level, completedGoals, maxStreak int, held []string) []string {
	have := make(map[string]bool, len(held))
	for _, id := range held {
		have[id] = true
	}

	var newIDs []string
	grant := func(rows []badgeThreshold, value int) {
		for _, row := range rows {
			if value >= row.value && !have[row.id] {
				newIDs = append(newIDs, row.id)
			}
		}
	}
	grant(levelThresholds, level)
	grant(goalThresholds, completedGoals)
	grant(streakThresholds, maxStreak)
	return newIDs
}

// BadgeService evaluates and awards badges against stored progress.
type BadgeService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBadgeService creates a badge service. The clock defaults to time.Now and
// is overridable for deterministic tests.
func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db, now: time.Now}
}

// WithClock replaces the service clock.
func (b *BadgeService) WithClock(now func() time.Time) *BadgeService {
	b.now = now
	return b
}

// MaxStreak recomputes the streak of every goal the user owns and returns the
// largest.
func (b *BadgeService) MaxStreak(userID uint) (int, error) {
	var goals []models.Goal
	if err := b.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return 0, err
	}

	now := b.now()
	maxStreak := 0
	for _, goal := range goals {
		var dates []time.Time
		if err := b.db.Model(&models.CheckIn{}).Where("goal_id = ?", goal.ID).
			Pluck("date", &dates).Error; err != nil {
			return 0, err
		}
		if s := CalculateStreak(dates, now); s > maxStreak {
			maxStreak = s
		}
	}
	return maxStreak, nil
}

// CheckAndAward runs one badge evaluation for the user: reads level (derived
// from xp, not the stored column), completed-goal count and max streak, grants
// whatever thresholds are newly satisfied, and persists only when the set
// grew. Badges are never revoked. Returns the newly granted badge details.
func (b *BadgeService) CheckAndAward(userID uint) ([]Badge, error) {
	var user models.User
	if err := b.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var completedGoals int64
	if err := b.db.Model(&models.Goal{}).
		Where("user_id = ? AND status = ?", userID, models.GoalStatusCompleted).
		Count(&completedGoals).Error; err != nil {
		return nil, err
	}

	maxStreak, err := b.MaxStreak(userID)
	if err != nil {
		return nil, err
	}

	level := LevelForXP(user.XP)
	newIDs := EarnedBadgeIDs(level, int(completedGoals), maxStreak, user.BadgeIDs())
	if len(newIDs) == 0 {
		return nil, nil
	}

	if user.AddBadges(newIDs) {
		if err := b.db.Model(&models.User{}).Where("id = ?", userID).
			Update("badges", user.Badges).Error; err != nil {
			return nil, err
		}
		if utils.Sugar != nil {
			utils.Sugar.Infow("badges granted", "user_id", userID, "badges", newIDs)
		}
	}

	return ResolveBadges(newIDs), nil
}
