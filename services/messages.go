package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
)

// Messages sends private messages and lists them per user.
type Messages struct {
	db *gorm.DB
}

// NewMessages creates a Messages service.
func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

// Send stores a message from senderName to recipientName.
// Both names must resolve; an unknown recipient yields ErrRecipientNotFound and nothing is written.
func (m *Messages) Send(ctx context.Context, senderName, recipientName, body string) (*models.Message, error) {
	sender, err := findUserByName(ctx, m.db, senderName)
	if err != nil {
		return nil, err
	}
	recipient, err := findUserByName(ctx, m.db, recipientName)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		Body:        body,
		SenderID:    sender.ID,
		Sender:      *sender,
		RecipientID: recipient.ID,
		Recipient:   *recipient,
	}
	if err := m.db.WithContext(ctx).Omit("Sender", "Recipient").Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &msg, nil
}

// Thread returns every message name sent or received.
func (m *Messages) Thread(ctx context.Context, name string) ([]models.Message, error) {
	return m.listFor(ctx, name, "sender_id = ? OR recipient_id = ?", 2)
}

// Inbox returns the messages name received.
func (m *Messages) Inbox(ctx context.Context, name string) ([]models.Message, error) {
	return m.listFor(ctx, name, "recipient_id = ?", 1)
}

// Outbox returns the messages name sent.
func (m *Messages) Outbox(ctx context.Context, name string) ([]models.Message, error) {
	return m.listFor(ctx, name, "sender_id = ?", 1)
}

// Count returns the number of messages.
func (m *Messages) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.db.WithContext(ctx).Model(&models.Message{}).Count(&n).Error
	return n, err
}

// listFor resolves name and applies cond with the user ID repeated args times.
// An unknown name yields an empty list.
func (m *Messages) listFor(ctx context.Context, name, cond string, args int) ([]models.Message, error) {
	msgs := []models.Message{}
	user, err := findUserByName(ctx, m.db, name)
	if errors.Is(err, ErrUserNotFound) {
		return msgs, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]interface{}, args)
	for i := range ids {
		ids[i] = user.ID
	}
	err = m.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where(cond, ids...).
		Order("id").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("list messages for %q: %w", name, err)
	}
	return msgs, nil
}
