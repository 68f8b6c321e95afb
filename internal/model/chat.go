package model

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation with the AI coach.
type ChatMessage struct {
	OwnedRecord
	Role    ChatRole `gorm:"size:20;not null" json:"role"`
	Content string   `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
