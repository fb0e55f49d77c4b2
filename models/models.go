// Package models holds the gorm entities persisted by the application.
package models

// All lists every model in dependency order, for AutoMigrate and table checks.
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Message{}}
}
