package filter

import (
	"testing"

	"football_assistance_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func training(title, date string) model.TrainingRecord {
	return model.TrainingRecord{Title: title, TrainingDate: date, DurationMinutes: 60}
}

func titles(records []model.TrainingRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestTrainingQueryIsCaseInsensitive(t *testing.T) {
	records := []model.TrainingRecord{
		training("Sprint drills", "2024-03-01"),
		training("Passing", "2024-03-02"),
	}

	got := Training(records, Criteria{Query: "SPRINT"})

	assert.Equal(t, []string{"Sprint drills"}, titles(got))
}

func TestTrainingQueryMatchesNotes(t *testing.T) {
	records := []model.TrainingRecord{
		{Title: "Session", Notes: "worked on weak foot", TrainingDate: "2024-03-01"},
		{Title: "Session", Notes: "rest", TrainingDate: "2024-03-02"},
	}

	got := Training(records, Criteria{Query: "weak"})

	assert.Len(t, got, 1)
	assert.Equal(t, "2024-03-01", got[0].TrainingDate)
}

func TestDateRangeIsInclusive(t *testing.T) {
	records := []model.TrainingRecord{
		training("a", "2024-01-31"),
		training("b", "2024-02-01"),
		training("c", "2024-02-15"),
		training("d", "2024-02-29"),
		training("e", "2024-03-01"),
	}

	got := Training(records, Criteria{Start: "2024-02-01", End: "2024-02-29"})

	assert.Equal(t, []string{"b", "c", "d"}, titles(got))
}

func TestEmptyCriteriaKeepsEverythingInOrder(t *testing.T) {
	records := []model.TrainingRecord{
		training("z", "2024-05-01"),
		training("a", "2023-01-01"),
	}

	got := Training(records, Criteria{})

	assert.Equal(t, []string{"z", "a"}, titles(got))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	records := []model.TrainingRecord{training("keep", "2024-01-01"), training("drop", "2024-01-02")}

	_ = Training(records, Criteria{Query: "keep"})

	assert.Equal(t, []string{"keep", "drop"}, titles(records))
}

func TestReflectionsSearchOpponentAndScene(t *testing.T) {
	reflections := []model.MatchReflection{
		{Opponent: "Rivals FC", MatchDate: "2024-04-01"},
		{Opponent: "City", SceneDescription: "lost the ball to a rival winger", MatchDate: "2024-04-08"},
		{Opponent: "United", Thoughts: "good game", MatchDate: "2024-04-15"},
	}

	got := Reflections(reflections, Criteria{Query: "rival"})

	assert.Len(t, got, 2)
	assert.Equal(t, "Rivals FC", got[0].Opponent)
	assert.Equal(t, "City", got[1].Opponent)
}

func TestGoalsWithoutDeadlineFailDateBounds(t *testing.T) {
	deadline := "2024-06-30"
	goals := []model.Goal{
		{Title: "Weak foot", Deadline: &deadline},
		{Title: "Stamina"},
	}

	assert.Len(t, Goals(goals, Criteria{}), 2)
	assert.Len(t, Goals(goals, Criteria{Query: "stamina"}), 1)

	bounded := Goals(goals, Criteria{Start: "2024-01-01"})
	assert.Len(t, bounded, 1)
	assert.Equal(t, "Weak foot", bounded[0].Title)
}

func TestApplyGeneric(t *testing.T) {
	type item struct{ name, day string }
	items := []item{{"alpha", "2024-01-01"}, {"beta", "2024-01-02"}}

	got := Apply(items, Criteria{Query: "ET", End: "2024-01-02"},
		func(i item) []string { return []string{i.name} },
		func(i item) string { return i.day })

	assert.Equal(t, []item{{"beta", "2024-01-02"}}, got)
}
