package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillup-labs/skillup/models"
	"github.com/skillup-labs/skillup/services"
	"github.com/skillup-labs/skillup/utils"
)

// UserController serves the caller's progress: stats, badges, check-in
// history, the weekly XP chart and burnout insights.
type UserController struct {
	db     *gorm.DB
	badges *services.BadgeService
	now    func() time.Time
}

// NewUserController creates a new controller instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db, badges: services.NewBadgeService(db), now: time.Now}
}

// WithClock replaces the controller clock, used by tests to pin "today".
func (u *UserController) WithClock(now func() time.Time) *UserController {
	u.now = now
	u.badges.WithClock(now)
	return u
}

// GetStats returns the caller's aggregate progress. The level is recomputed
// from xp on every read and written back when the stored value drifted.
func (u *UserController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load user")
		return
	}

	// Self-healing read: the stored level is never authoritative.
	if level := services.LevelForXP(user.XP); level != user.Level {
		if err := u.db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("level", level).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to reconcile level")
			return
		}
		user.Level = level
	}

	var totalGoals, completedGoals, totalCheckIns int64
	if err := u.db.Model(&models.Goal{}).Where("user_id = ?", userID).
		Count(&totalGoals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to count goals")
		return
	}
	if err := u.db.Model(&models.Goal{}).
		Where("user_id = ? AND status = ?", userID, models.GoalStatusCompleted).
		Count(&completedGoals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to count goals")
		return
	}
	if err := u.db.Model(&models.CheckIn{}).Where("user_id = ?", userID).
		Count(&totalCheckIns).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to count check-ins")
		return
	}

	maxStreak, err := u.badges.MaxStreak(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to compute streak")
		return
	}

	utils.Success(ctx, gin.H{
		"username":        user.Username,
		"xp":              user.XP,
		"level":           user.Level,
		"streak":          maxStreak,
		"total_goals":     totalGoals,
		"completed_goals": completedGoals,
		"total_check_ins": totalCheckIns,
		"badges":          services.ResolveBadges(user.BadgeIDs()),
	})
}

// GetBadges resolves the caller's stored badge ids against the catalog.
func (u *UserController) GetBadges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{"badges": services.ResolveBadges(user.BadgeIDs())})
}

// GetCheckInHistory returns the caller's check-in dates, newest first, for
// calendar rendering.
func (u *UserController) GetCheckInHistory(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var dates []time.Time
	if err := u.db.Model(&models.CheckIn{}).Where("user_id = ?", userID).
		Order("date DESC").Pluck("date", &dates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to load check-ins")
		return
	}

	utils.Success(ctx, gin.H{"dates": dates})
}

// GetWeeklyXP returns seven {day, xp} buckets covering the last seven calendar
// days, oldest first.
func (u *UserController) GetWeeklyXP(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := "cache:user:" + strconv.Itoa(int(userID)) + ":weekly-xp"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	now := u.now()
	var checkIns []models.CheckIn
	if err := u.db.Where("user_id = ? AND date >= ?", userID, services.WeeklyWindowStart(now)).
		Find(&checkIns).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to load check-ins")
		return
	}

	payload := gin.H{"weekly_xp": services.BucketWeeklyXP(checkIns, now)}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Message: "success", Data: payload}, 10*time.Minute)
	utils.Success(ctx, payload)
}

// GetInsights grades the caller's burnout risk from recent activity.
func (u *UserController) GetInsights(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var checkIns []models.CheckIn
	if err := u.db.Where("user_id = ?", userID).Order("date ASC").
		Find(&checkIns).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50058, "failed to load check-ins")
		return
	}

	utils.Success(ctx, services.AnalyzeBurnout(checkIns, u.now()))
}
