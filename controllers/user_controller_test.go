package controllers

import (
	"net/http"
	"testing"

	"github.com/skillup-labs/skillup/models"
	"github.com/skillup-labs/skillup/services"
)

func TestGetStats_SelfHealsStoredLevel(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"xp": 2700, "level": 1}).Error; err != nil {
		t.Fatalf("seed xp: %v", err)
	}
	router := newTestRouter(db, user.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/stats", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if level := env.Data["level"].(float64); level != 10 {
		t.Errorf("level = %v, want 10", level)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Level != 10 {
		t.Errorf("stored level = %d, want the reconciled 10", stored.Level)
	}
}

func TestGetStats_Counts(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	active := createGoal(t, db, user.ID, "Learn Go")
	done := createGoal(t, db, user.ID, "Learn SQL")
	if err := db.Model(&models.Goal{}).Where("id = ?", done.ID).
		Update("status", models.GoalStatusCompleted).Error; err != nil {
		t.Fatalf("complete goal: %v", err)
	}
	router := newTestRouter(db, user.ID)

	mustCheckIn(t, router, active.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/stats", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if got := env.Data["total_goals"].(float64); got != 2 {
		t.Errorf("total_goals = %v, want 2", got)
	}
	if got := env.Data["completed_goals"].(float64); got != 1 {
		t.Errorf("completed_goals = %v, want 1", got)
	}
	if got := env.Data["total_check_ins"].(float64); got != 1 {
		t.Errorf("total_check_ins = %v, want 1", got)
	}
	if got := env.Data["streak"].(float64); got != 1 {
		t.Errorf("streak = %v, want 1", got)
	}
}

func TestGetBadges_ResolvesCatalog(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("badges", `["streak-3","level-5"]`).Error; err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	router := newTestRouter(db, user.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/badges", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	badges := env.Data["badges"].([]interface{})
	if len(badges) != 2 {
		t.Fatalf("got %d badges, want 2", len(badges))
	}
	first := badges[0].(map[string]interface{})
	if first["name"] != "On a Roll" {
		t.Errorf("first badge name = %v, want On a Roll", first["name"])
	}
}

func TestGetCheckInHistory_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	goal := createGoal(t, db, user.ID, "Learn Go")
	for _, day := range []int{5, 2, 0} {
		date := daysAgo(day)
		ci := models.CheckIn{UserID: user.ID, GoalID: goal.ID, Date: date,
			Day: date.Format(models.DayFormat), TaskDescription: "studied",
			HoursStudied: 1, XPGained: 10}
		if err := db.Create(&ci).Error; err != nil {
			t.Fatalf("seed check-in: %v", err)
		}
	}
	router := newTestRouter(db, user.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/checkin-history", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	dates := env.Data["dates"].([]interface{})
	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3", len(dates))
	}
	first := dates[0].(string)
	last := dates[2].(string)
	if !(first > last) {
		t.Errorf("dates not newest first: %v", dates)
	}
}

func TestGetWeeklyXP_SevenBuckets(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	goal := createGoal(t, db, user.ID, "Learn Go")
	router := newTestRouter(db, user.ID)

	mustCheckIn(t, router, goal.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/weekly-xp", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	buckets := env.Data["weekly_xp"].([]interface{})
	if len(buckets) != services.WeeklyXPDays {
		t.Fatalf("got %d buckets, want %d", len(buckets), services.WeeklyXPDays)
	}
	today := buckets[len(buckets)-1].(map[string]interface{})
	if xp := today["xp"].(float64); xp != 10 {
		t.Errorf("today's bucket xp = %v, want 10", xp)
	}
	if day := today["day"].(string); day != testNow.Format("Mon") {
		t.Errorf("today's bucket label = %v, want %s", day, testNow.Format("Mon"))
	}
}

func TestGetInsights_FlagsLongInactivity(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	goal := createGoal(t, db, user.ID, "Learn Go")
	date := daysAgo(10)
	ci := models.CheckIn{UserID: user.ID, GoalID: goal.ID, Date: date,
		Day: date.Format(models.DayFormat), TaskDescription: "studied",
		HoursStudied: 2, XPGained: 10}
	if err := db.Create(&ci).Error; err != nil {
		t.Fatalf("seed check-in: %v", err)
	}
	router := newTestRouter(db, user.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/insights", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if risk := env.Data["risk"].(string); risk != services.RiskHigh {
		t.Errorf("risk = %v, want %s", risk, services.RiskHigh)
	}
	if days := env.Data["days_since_check_in"].(float64); days != 10 {
		t.Errorf("days_since_check_in = %v, want 10", days)
	}
}

func TestGetInsights_NoHistory(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada")
	router := newTestRouter(db, user.ID)

	status, env := doJSON(t, router, http.MethodGet, "/api/v1/user/insights", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if risk := env.Data["risk"].(string); risk != services.RiskNone {
		t.Errorf("risk = %v, want %s", risk, services.RiskNone)
	}
}
