package export

import (
	"strconv"
	"time"

	"football_assistance_backend/internal/model"
)

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type GoalRow struct{ model.Goal }

func (GoalRow) Columns() []string {
	return []string{"id", "title", "description", "deadline", "progress", "status", "created_at", "updated_at"}
}

func (r GoalRow) Values() []string {
	return []string{
		r.ID, r.Title, r.Description, optional(r.Deadline),
		strconv.Itoa(r.Progress), string(r.Status),
		timestamp(r.CreatedAt), timestamp(r.UpdatedAt),
	}
}

type TrainingRow struct{ model.TrainingRecord }

func (TrainingRow) Columns() []string {
	return []string{"id", "title", "content", "training_date", "duration_minutes", "notes", "created_at"}
}

func (r TrainingRow) Values() []string {
	return []string{
		r.ID, r.Title, r.Content, r.TrainingDate,
		strconv.Itoa(r.DurationMinutes), r.Notes, timestamp(r.CreatedAt),
	}
}

type ReflectionRow struct{ model.MatchReflection }

func (ReflectionRow) Columns() []string {
	return []string{
		"id", "match_date", "opponent", "jersey_number", "scene_description", "thoughts",
		"video_url", "video_analysis", "analysis_status", "created_at",
	}
}

func (r ReflectionRow) Values() []string {
	status := ""
	if r.AnalysisStatus != nil {
		status = string(*r.AnalysisStatus)
	}
	return []string{
		r.ID, r.MatchDate, r.Opponent, optionalInt(r.JerseyNumber), r.SceneDescription, r.Thoughts,
		optional(r.VideoURL), string(r.VideoAnalysis), status, timestamp(r.CreatedAt),
	}
}

func GoalRows(goals []model.Goal) []Row {
	rows := make([]Row, len(goals))
	for i := range goals {
		rows[i] = GoalRow{goals[i]}
	}
	return rows
}

func TrainingRows(records []model.TrainingRecord) []Row {
	rows := make([]Row, len(records))
	for i := range records {
		rows[i] = TrainingRow{records[i]}
	}
	return rows
}

func ReflectionRows(reflections []model.MatchReflection) []Row {
	rows := make([]Row, len(reflections))
	for i := range reflections {
		rows[i] = ReflectionRow{reflections[i]}
	}
	return rows
}
