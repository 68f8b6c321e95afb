package model

type TeamMember struct {
	OwnedRecord
	Name            string `gorm:"size:100;not null" json:"name"`
	Position        string `gorm:"size:50" json:"position"`
	Characteristics string `gorm:"type:text" json:"characteristics"`
	JerseyNumber    *int   `json:"jersey_number"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
