package models

import "time"

// Post is a short text published by a user. Posts are never edited or deleted.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Date     time.Time `gorm:"index;not null" json:"date"`
}
