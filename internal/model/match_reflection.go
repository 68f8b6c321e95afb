package model

import (
	"time"

	"gorm.io/datatypes"
)

type AnalysisStatus string

// A nil status means no analysis was ever requested.
const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

var analysisTransitions = map[AnalysisStatus][]AnalysisStatus{
	"":                 {AnalysisPending},
	AnalysisPending:    {AnalysisProcessing},
	AnalysisProcessing: {AnalysisCompleted, AnalysisFailed},
}

// CanTransition reports whether an analysis may move from one status to the next.
// Completed and failed are terminal.
func CanTransition(from *AnalysisStatus, to AnalysisStatus) bool {
	var current AnalysisStatus
	if from != nil {
		current = *from
	}
	for _, next := range analysisTransitions[current] {
		if next == to {
			return true
		}
	}
	return false
}

func (s AnalysisStatus) Ptr() *AnalysisStatus {
	return &s
}

type MatchReflection struct {
	OwnedRecord
	MatchDate        string          `gorm:"size:10;index;not null" json:"match_date"`
	Opponent         string          `gorm:"size:255" json:"opponent"`
	JerseyNumber     *int            `json:"jersey_number"`
	SceneDescription string          `gorm:"type:text" json:"scene_description"`
	Thoughts         string          `gorm:"type:text" json:"thoughts"`
	VideoURL         *string         `gorm:"size:512" json:"video_url"`
	VideoAnalysis    datatypes.JSON  `json:"video_analysis"`
	AnalysisStatus   *AnalysisStatus `gorm:"size:20;index" json:"analysis_status"`
	// AnalysisUpdatedAt marks the last status change and drives the stale sweeper.
	AnalysisUpdatedAt *time.Time `json:"-"`
}

func (MatchReflection) TableName() string {
	return "match_reflections"
}

// ClearVideo drops every trace of an uploaded video and its analysis.
func (r *MatchReflection) ClearVideo() {
	r.VideoURL = nil
	r.VideoAnalysis = nil
	r.AnalysisStatus = nil
	r.AnalysisUpdatedAt = nil
}
