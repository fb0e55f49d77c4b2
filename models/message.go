package models

import "time"

// Message is a private message between two users.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Body        string    `gorm:"column:message;type:text;not null" json:"message"`
	SenderID    uint      `gorm:"index;not null" json:"sender_id"`
	Sender      User      `gorm:"foreignKey:SenderID" json:"sender"`
	RecipientID uint      `gorm:"index;not null" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID" json:"recipient"`
	CreatedAt   time.Time `json:"created_at"`
}
