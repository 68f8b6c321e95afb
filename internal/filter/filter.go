// Package filter narrows record lists by free-text query and inclusive date range.
package filter

import (
	"strings"

	"football_assistance_backend/internal/model"
)

// Criteria is the user's current search state. Empty fields do not constrain.
type Criteria struct {
	Query string `form:"q"`
	Start string `form:"start"`
	End   string `form:"end"`
}

func (c Criteria) IsZero() bool {
	return c.Query == "" && c.Start == "" && c.End == ""
}

// Apply keeps the records whose designated fields contain the query (case-insensitive)
// and whose date lies within [Start, End]. Dates compare as YYYY-MM-DD strings.
// The input is not modified and order is preserved.
func Apply[T any](records []T, c Criteria, fields func(T) []string, date func(T) string) []T {
	query := strings.ToLower(c.Query)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if query != "" && !containsAny(fields(rec), query) {
			continue
		}
		if c.Start != "" || c.End != "" {
			d := date(rec)
			if d == "" {
				continue
			}
			if c.Start != "" && d < c.Start {
				continue
			}
			if c.End != "" && d > c.End {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func containsAny(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func Goals(goals []model.Goal, c Criteria) []model.Goal {
	return Apply(goals, c,
		func(g model.Goal) []string { return []string{g.Title, g.Description} },
		func(g model.Goal) string {
			if g.Deadline == nil {
				return ""
			}
			return *g.Deadline
		})
}

func Training(records []model.TrainingRecord, c Criteria) []model.TrainingRecord {
	return Apply(records, c,
		func(r model.TrainingRecord) []string { return []string{r.Title, r.Content, r.Notes} },
		func(r model.TrainingRecord) string { return r.TrainingDate })
}

func Reflections(reflections []model.MatchReflection, c Criteria) []model.MatchReflection {
	return Apply(reflections, c,
		func(r model.MatchReflection) []string { return []string{r.Opponent, r.SceneDescription, r.Thoughts} },
		func(r model.MatchReflection) string { return r.MatchDate })
}
