package model

import (
	"time"

	"gorm.io/datatypes"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var Positions = []string{"GK", "CB", "SB", "DMF", "CMF", "AMF", "WG", "FW"}

var SkillOptions = []string{
	"dribbling", "passing", "shooting", "crossing", "heading",
	"tackling", "interception", "speed", "stamina", "physicality",
	"tactical_awareness", "positioning", "mentality", "leadership",
}

// Profile shares its primary key with the owning user. Username is fixed at sign-up.
type Profile struct {
	ID             string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username       string                      `gorm:"size:100;uniqueIndex;not null" json:"username"`
	TeamName       string                      `gorm:"size:255" json:"team_name"`
	Position       string                      `gorm:"size:20" json:"position"`
	Strengths      datatypes.JSONSlice[string] `json:"strengths"`
	Weaknesses     datatypes.JSONSlice[string] `json:"weaknesses"`
	FavoritePlayer string                      `gorm:"size:255" json:"favorite_player"`
	Theme          Theme                       `gorm:"size:10;default:'light'" json:"theme"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func IsSkill(label string) bool {
	for _, s := range SkillOptions {
		if s == label {
			return true
		}
	}
	return false
}

func IsPosition(label string) bool {
	for _, p := range Positions {
		if p == label {
			return true
		}
	}
	return false
}
