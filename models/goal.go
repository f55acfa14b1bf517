package models

import "time"

// Goal statuses. Completion is the only status transition that triggers badge
// evaluation outside of a check-in.
const (
	GoalStatusInProgress = "In Progress"
	GoalStatusCompleted  = "Completed"
)

// Goal is a learning goal owned by a user. Streak is derived from the goal's
// check-ins on read and never persisted.
type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	StudyArea   string     `gorm:"size:128;not null" json:"study_area"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `gorm:"size:32;default:'In Progress'" json:"status"`
	Tasks       []GoalTask `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tasks"`
	CheckIns    []CheckIn  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Streak int `gorm:"-" json:"streak"`
}

// GoalTask is a sub-task inside a goal's plan.
type GoalTask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"index;not null" json:"goal_id"`
	TaskName  string    `gorm:"size:255;not null" json:"task_name"`
	TaskDate  time.Time `gorm:"not null" json:"task_date"`
	Completed bool      `gorm:"default:false" json:"completed"`
}
