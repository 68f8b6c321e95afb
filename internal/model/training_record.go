package model

// TrainingRecord has no edit path: rows are only created and deleted.
type TrainingRecord struct {
	OwnedRecord
	Title           string `gorm:"size:255;not null" json:"title"`
	Content         string `gorm:"type:text" json:"content"`
	TrainingDate    string `gorm:"size:10;index;not null" json:"training_date"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Notes           string `gorm:"type:text" json:"notes"`
}

func (TrainingRecord) TableName() string {
	return "training_records"
}
