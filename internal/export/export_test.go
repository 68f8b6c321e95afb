package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"football_assistance_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTraining() []model.TrainingRecord {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.TrainingRecord{
		{
			OwnedRecord:     model.OwnedRecord{ID: "t1", UserID: "u1", CreatedAt: created},
			Title:           "Passing, first touch",
			Content:         "rondo",
			TrainingDate:    "2024-03-01",
			DurationMinutes: 90,
			Notes:           `said "again"`,
		},
		{
			OwnedRecord:     model.OwnedRecord{ID: "t2", UserID: "u1", CreatedAt: created},
			Title:           "Sprints",
			TrainingDate:    "2024-03-02",
			DurationMinutes: 30,
		},
	}
}

func TestWriteCSVQuotesEmbeddedCommas(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatCSV, TrainingRows(sampleTraining())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,title,content,training_date,duration_minutes,notes,created_at", lines[0])
	assert.Equal(t, `t1,"Passing, first touch",rondo,2024-03-01,90,"said ""again""",2024-03-01T09:00:00Z`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "t2,Sprints,,2024-03-02,30,"))
}

func TestWriteJSONIsIndentedArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatJSON, TrainingRows(sampleTraining())))

	assert.Contains(t, buf.String(), "\n  {\n    \"id\": \"t1\"")
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Passing, first touch", decoded[0]["title"])
	assert.Equal(t, float64(90), decoded[0]["duration_minutes"])
}

func TestWriteEmptyIsNoop(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, FormatCSV, nil)

	assert.ErrorIs(t, err, ErrEmpty)
	assert.Zero(t, buf.Len())
}

func TestReflectionRowHandlesNulls(t *testing.T) {
	jersey := 10
	row := ReflectionRow{model.MatchReflection{MatchDate: "2024-04-01", Opponent: "City", JerseyNumber: &jersey}}

	values := row.Values()

	require.Len(t, values, len(row.Columns()))
	assert.Equal(t, "10", values[3])
	assert.Equal(t, "", values[6])
	assert.Equal(t, "", values[8])
}

func TestGoalRowCarriesStatus(t *testing.T) {
	deadline := "2024-12-31"
	row := GoalRow{model.Goal{Title: "Weak foot", Deadline: &deadline, Progress: 100, Status: model.GoalCompleted}}

	values := row.Values()

	assert.Equal(t, "2024-12-31", values[3])
	assert.Equal(t, "100", values[4])
	assert.Equal(t, "completed", values[5])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "training-records.csv", Filename("training-records", FormatCSV))
	assert.Equal(t, "match-reflections.json", Filename("Match Reflections", FormatJSON))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
