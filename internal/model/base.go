package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedRecord is embedded by every row that belongs to a single user.
type OwnedRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"index;type:varchar(36);not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *OwnedRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Reown detaches the record from its previous owner so it can be inserted
// again as a fresh row.
func (r *OwnedRecord) Reown(userID string, now time.Time) {
	r.ID = ""
	r.UserID = userID
	r.CreatedAt = now
}

func GenerateUUID() string {
	return uuid.New().String()
}
