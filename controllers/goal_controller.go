package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillup-labs/skillup/models"
	"github.com/skillup-labs/skillup/services"
	"github.com/skillup-labs/skillup/utils"
)

// GoalController manages learning goals and the daily check-in flow.
type GoalController struct {
	db     *gorm.DB
	badges *services.BadgeService
	now    func() time.Time
}

var errAlreadyCheckedIn = errors.New("already checked in today for this goal")

// NewGoalController creates a new controller instance.
func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{db: db, badges: services.NewBadgeService(db), now: time.Now}
}

// WithClock replaces the controller clock, used by tests to pin "today".
func (g *GoalController) WithClock(now func() time.Time) *GoalController {
	g.now = now
	g.badges.WithClock(now)
	return g
}

// ListGoals returns the caller's goals, newest first, each with its derived
// streak.
func (g *GoalController) ListGoals(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var goals []models.Goal
	if err := g.db.Preload("Tasks").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list goals")
		return
	}

	now := g.now()
	for i := range goals {
		var dates []time.Time
		if err := g.db.Model(&models.CheckIn{}).Where("goal_id = ?", goals[i].ID).
			Pluck("date", &dates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load check-ins")
			return
		}
		goals[i].Streak = services.CalculateStreak(dates, now)
	}

	utils.Success(ctx, gin.H{"goals": goals})
}

type goalTaskRequest struct {
	TaskName  string    `json:"task_name" binding:"required"`
	TaskDate  time.Time `json:"task_date" binding:"required"`
	Completed bool      `json:"completed"`
}

// CreateGoal creates a goal for the caller.
func (g *GoalController) CreateGoal(ctx *gin.Context) {
	var req struct {
		Title       string            `json:"title" binding:"required,min=1"`
		StudyArea   string            `json:"study_area" binding:"required,min=1"`
		Description string            `json:"description"`
		StartDate   time.Time         `json:"start_date" binding:"required"`
		EndDate     *time.Time        `json:"end_date"`
		Tasks       []goalTaskRequest `json:"tasks"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "title, study_area and start_date are required")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "title cannot be empty")
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       title,
		StudyArea:   utils.Sanitize(strings.TrimSpace(req.StudyArea)),
		Description: utils.Sanitize(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.GoalStatusInProgress,
	}
	for _, t := range req.Tasks {
		goal.Tasks = append(goal.Tasks, models.GoalTask{
			TaskName:  utils.Sanitize(strings.TrimSpace(t.TaskName)),
			TaskDate:  t.TaskDate,
			Completed: t.Completed,
		})
	}

	if err := g.db.Create(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to create goal")
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// UpdateGoal updates goal fields; transitioning to Completed is the one goal
// event that triggers badge evaluation.
func (g *GoalController) UpdateGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, ok := g.ownedGoal(ctx, userID)
	if !ok {
		return
	}

	var req struct {
		Title       *string           `json:"title"`
		StudyArea   *string           `json:"study_area"`
		Description *string           `json:"description"`
		StartDate   *time.Time        `json:"start_date"`
		EndDate     *time.Time        `json:"end_date"`
		Status      *string           `json:"status"`
		Tasks       []goalTaskRequest `json:"tasks"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}

	wasCompleted := goal.Status == models.GoalStatusCompleted

	if req.Title != nil {
		goal.Title = utils.Sanitize(strings.TrimSpace(*req.Title))
	}
	if req.StudyArea != nil {
		goal.StudyArea = utils.Sanitize(strings.TrimSpace(*req.StudyArea))
	}
	if req.Description != nil {
		goal.Description = utils.Sanitize(*req.Description)
	}
	if req.StartDate != nil {
		goal.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		goal.EndDate = req.EndDate
	}
	if req.Status != nil {
		if *req.Status != models.GoalStatusInProgress && *req.Status != models.GoalStatusCompleted {
			utils.Error(ctx, http.StatusBadRequest, 40043, "invalid status")
			return
		}
		goal.Status = *req.Status
	}

	err := g.db.Transaction(func(tx *gorm.DB) error {
		if req.Tasks != nil {
			if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalTask{}).Error; err != nil {
				return err
			}
			goal.Tasks = nil
			for _, t := range req.Tasks {
				goal.Tasks = append(goal.Tasks, models.GoalTask{
					GoalID:    goal.ID,
					TaskName:  utils.Sanitize(strings.TrimSpace(t.TaskName)),
					TaskDate:  t.TaskDate,
					Completed: t.Completed,
				})
			}
		}
		return tx.Save(&goal).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to update goal")
		return
	}

	newBadges := []services.Badge{}
	if !wasCompleted && goal.Status == models.GoalStatusCompleted {
		granted, err := g.badges.CheckAndAward(userID)
		if err != nil {
			// Goal completion stands even when badge evaluation cannot run.
			if utils.Sugar != nil {
				utils.Sugar.Warnf("badge evaluation failed for user %d: %v", userID, err)
			}
		} else if granted != nil {
			newBadges = granted
		}
		utils.InvalidateByPrefix("cache:user:" + strconv.Itoa(int(userID)) + ":")
	}

	utils.Success(ctx, gin.H{"goal": goal, "new_badges": newBadges})
}

// DeleteGoal removes a goal and, through the association constraints, its
// tasks and check-ins.
func (g *GoalController) DeleteGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, ok := g.ownedGoal(ctx, userID)
	if !ok {
		return
	}

	err := g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.CheckIn{}).Error; err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&goal).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to delete goal")
		return
	}

	utils.InvalidateByPrefix("cache:user:" + strconv.Itoa(int(userID)) + ":")
	utils.Success(ctx, gin.H{"id": goal.ID})
}

// CheckIn records today's study session for a goal: one check-in per goal per
// calendar day, XP scaled by the streak as it stood before this check-in,
// level recomputed from the new total, then a best-effort badge pass.
func (g *GoalController) CheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		TaskDescription string  `json:"task_description" binding:"required"`
		HoursStudied    float64 `json:"hours_studied" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, "task_description and positive hours_studied are required")
		return
	}

	taskDescription := utils.Sanitize(strings.TrimSpace(req.TaskDescription))
	if taskDescription == "" {
		utils.Error(ctx, http.StatusBadRequest, 40044, "task_description cannot be empty")
		return
	}

	goal, ok := g.ownedGoal(ctx, userID)
	if !ok {
		return
	}

	now := g.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrowStart := todayStart.Add(24 * time.Hour)

	var checkIn models.CheckIn
	var xpGained int
	var userXP int

	err := g.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CheckIn
		err := tx.Where("goal_id = ? AND date >= ? AND date < ?", goal.ID, todayStart, tomorrowStart).
			First(&existing).Error
		if err == nil {
			return errAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		// Streak over the history that exists before this check-in.
		var dates []time.Time
		if err := tx.Model(&models.CheckIn{}).Where("goal_id = ?", goal.ID).
			Pluck("date", &dates).Error; err != nil {
			return err
		}
		streak := services.CalculateStreak(dates, now)
		xpGained = services.XPForCheckIn(streak)

		checkIn = models.CheckIn{
			UserID:          userID,
			GoalID:          goal.ID,
			Date:            now,
			Day:             now.Format(models.DayFormat),
			TaskDescription: taskDescription,
			HoursStudied:    req.HoursStudied,
			XPGained:        xpGained,
		}
		if err := tx.Create(&checkIn).Error; err != nil {
			// The unique (goal_id, day) index closes the window between the
			// existence check above and this insert.
			return err
		}

		user.XP += xpGained
		user.Level = services.LevelForXP(user.XP)
		userXP = user.XP
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{"xp": user.XP, "level": user.Level}).Error
	})

	if err != nil {
		if errors.Is(err, errAlreadyCheckedIn) {
			utils.Error(ctx, http.StatusConflict, 40940, err.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to record check-in")
		return
	}

	newBadges, err := g.badges.CheckAndAward(userID)
	if err != nil {
		// Best-effort: the check-in already committed.
		if utils.Sugar != nil {
			utils.Sugar.Warnf("badge evaluation failed for user %d: %v", userID, err)
		}
		newBadges = nil
	}
	if newBadges == nil {
		newBadges = []services.Badge{}
	}

	utils.InvalidateByPrefix("cache:user:" + strconv.Itoa(int(userID)) + ":")

	utils.Success(ctx, gin.H{
		"message":    "check-in successful",
		"xp_gained":  xpGained,
		"user_xp":    userXP,
		"new_badges": newBadges,
		"check_in":   checkIn,
	})
}

// ownedGoal loads the :id goal and enforces ownership, writing the error
// response itself when the goal is missing or foreign.
func (g *GoalController) ownedGoal(ctx *gin.Context, userID uint) (models.Goal, bool) {
	id := strings.TrimSpace(ctx.Param("id"))
	var goal models.Goal
	if err := g.db.First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "goal not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to load goal")
		}
		return models.Goal{}, false
	}
	if goal.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40340, "goal belongs to another user")
		return models.Goal{}, false
	}
	return goal, true
}
