package model

const BackupVersion = "1.0"

// BackupDocument is the portable snapshot of one user's records.
// It is produced on demand and never stored server-side.
type BackupDocument struct {
	ExportDate string      `json:"exportDate"`
	Version    string      `json:"version"`
	Data       *BackupData `json:"data"`
}

type BackupData struct {
	Goals       []Goal            `json:"goals"`
	Training    []TrainingRecord  `json:"training"`
	Reflections []MatchReflection `json:"reflections"`
	TeamMembers []TeamMember      `json:"teamMembers"`
	Profile     *Profile          `json:"profile"`
}
