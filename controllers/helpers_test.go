package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillup-labs/skillup/middleware"
	"github.com/skillup-labs/skillup/models"
)

// testNow pins "today" for every controller test.
var testNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "skillup.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Goal{}, &models.GoalTask{}, &models.CheckIn{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter mounts the protected routes behind a stub auth layer that
// injects the given user id, with the controller clocks pinned to testNow.
func newTestRouter(db *gorm.DB, userID uint) *gin.Engine {
	return newTestRouterAt(db, userID, testNow)
}

func newTestRouterAt(db *gorm.DB, userID uint, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, userID)
		ctx.Next()
	})

	clock := func() time.Time { return now }
	goals := NewGoalController(db).WithClock(clock)
	users := NewUserController(db).WithClock(clock)

	api := router.Group("/api/v1")
	api.GET("/goals", goals.ListGoals)
	api.POST("/goals", goals.CreateGoal)
	api.PUT("/goals/:id", goals.UpdateGoal)
	api.DELETE("/goals/:id", goals.DeleteGoal)
	api.POST("/goals/:id/checkin", goals.CheckIn)
	api.GET("/user/stats", users.GetStats)
	api.GET("/user/badges", users.GetBadges)
	api.GET("/user/checkin-history", users.GetCheckInHistory)
	api.GET("/user/weekly-xp", users.GetWeeklyXP)
	api.GET("/user/insights", users.GetInsights)
	return router
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createGoal(t *testing.T, db *gorm.DB, userID uint, title string) models.Goal {
	t.Helper()
	goal := models.Goal{
		UserID:    userID,
		Title:     title,
		StudyArea: "Programming",
		StartDate: daysAgo(30),
		Status:    models.GoalStatusInProgress,
	}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return goal
}

func mustCheckIn(t *testing.T, router *gin.Engine, goalID uint) envelope {
	t.Helper()
	status, env := doJSON(t, router, http.MethodPost,
		goalPath(goalID)+"/checkin",
		gin.H{"task_description": "worked through exercises", "hours_studied": 1.5})
	if status != http.StatusOK {
		t.Fatalf("check-in: status %d, body %+v", status, env)
	}
	return env
}

func goalPath(goalID uint) string {
	return "/api/v1/goals/" + strconv.Itoa(int(goalID))
}
