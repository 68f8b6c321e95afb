package model

import (
	"time"

	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

type Goal struct {
	OwnedRecord
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *string    `gorm:"size:10" json:"deadline"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Status      GoalStatus `gorm:"size:20;default:'active'" json:"status"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// BeforeSave keeps Status consistent with Progress on every insert and update.
func (g *Goal) BeforeSave(tx *gorm.DB) (err error) {
	g.Progress = ClampProgress(g.Progress)
	g.Status = DeriveGoalStatus(g.Progress)
	return
}

func ClampProgress(progress int) int {
	if progress < MinProgress {
		return MinProgress
	}
	if progress > MaxProgress {
		return MaxProgress
	}
	return progress
}

// DeriveGoalStatus is the only source of a goal's status.
func DeriveGoalStatus(progress int) GoalStatus {
	if progress >= MaxProgress {
		return GoalCompleted
	}
	return GoalActive
}
