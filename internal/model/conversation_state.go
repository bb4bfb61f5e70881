package model

// ConversationState is the persisted per-user dialogue position. A user has
// zero or one row; absence means the next message starts a new dialogue.
type ConversationState struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	UserID        string `gorm:"column:user_phone;size:40;uniqueIndex;not null"`
	CurrentStep   string `gorm:"size:100;not null"`
	CollectedData string `gorm:"type:text;not null"`
}

// TableName preserves the legacy table name.
func (ConversationState) TableName() string { return "conversation_state" }
