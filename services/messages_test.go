package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/microblog/models"
)

func bodies(msgs []models.Message) []string {
	out := []string{}
	for _, m := range msgs {
		out = append(out, m.Body)
	}
	return out
}

func TestMessagesSendAndFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mustRegister(t, NewAccounts(db), "alice", "bob", "carol")
	messages := NewMessages(db)

	for _, m := range []struct{ from, to, body string }{
		{"alice", "bob", "hi bob"},
		{"bob", "alice", "hi alice"},
		{"carol", "bob", "hey"},
	} {
		msg, err := messages.Send(ctx, m.from, m.to, m.body)
		require.NoError(t, err)
		assert.Equal(t, m.from, msg.Sender.Name)
		assert.Equal(t, m.to, msg.Recipient.Name)
	}

	thread, err := messages.Thread(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi bob", "hi alice"}, bodies(thread))
	for _, m := range thread {
		assert.True(t, m.Sender.Name == "alice" || m.Recipient.Name == "alice")
	}

	inbox, err := messages.Inbox(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi bob", "hey"}, bodies(inbox))

	outbox, err := messages.Outbox(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi alice"}, bodies(outbox))

	empty, err := messages.Inbox(ctx, "ghost")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMessagesUnknownRecipient(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mustRegister(t, NewAccounts(db), "alice")
	messages := NewMessages(db)

	_, err := messages.Send(ctx, "alice", "nobody", "hello?")
	assert.ErrorIs(t, err, ErrRecipientNotFound)

	_, err = messages.Send(ctx, "ghost", "alice", "hello?")
	assert.ErrorIs(t, err, ErrUserNotFound)

	n, err := messages.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
