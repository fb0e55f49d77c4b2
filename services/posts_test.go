package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/microblog/utils"
)

func contents(t *testing.T, p *Posts, author string) []string {
	t.Helper()
	var err error
	var out []string
	if author == "" {
		posts, lerr := p.List(context.Background())
		err = lerr
		for _, post := range posts {
			out = append(out, post.Content)
		}
	} else {
		posts, lerr := p.ListByAuthor(context.Background(), author)
		err = lerr
		for _, post := range posts {
			assert.Equal(t, author, post.Author.Name)
			out = append(out, post.Content)
		}
	}
	require.NoError(t, err)
	return out
}

func TestPostsCreateAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mustRegister(t, NewAccounts(db), "alice", "bob")

	posts := NewPosts(db, nil)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	posts.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, c := range []struct{ author, content string }{
		{"alice", "a1"}, {"bob", "b1"}, {"alice", "a2"},
	} {
		post, err := posts.Create(ctx, c.author, c.content)
		require.NoError(t, err)
		assert.Equal(t, c.author, post.Author.Name)
	}

	assert.Equal(t, []string{"a2", "b1", "a1"}, contents(t, posts, ""))
	assert.Equal(t, []string{"a2", "a1"}, contents(t, posts, "alice"))
	assert.Equal(t, []string{"b1"}, contents(t, posts, "bob"))

	n, err := posts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPostsUnknownAuthor(t *testing.T) {
	ctx := context.Background()
	posts := NewPosts(newTestDB(t), nil)

	_, err := posts.Create(ctx, "ghost", "boo")
	assert.ErrorIs(t, err, ErrUserNotFound)

	list, err := posts.ListByAuthor(ctx, "ghost")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostsCacheInvalidatedOnCreate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mustRegister(t, NewAccounts(db), "alice")

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	posts := NewPosts(db, utils.NewCache(rc, time.Minute))

	_, err := posts.Create(ctx, "alice", "first")
	require.NoError(t, err)

	assert.Equal(t, []string{"first"}, contents(t, posts, ""))
	assert.Equal(t, []string{"first"}, contents(t, posts, "alice"))
	assert.True(t, mr.Exists("cache:posts:all"))
	assert.True(t, mr.Exists("cache:posts:author:alice"))

	_, err = posts.Create(ctx, "alice", "second")
	require.NoError(t, err)
	assert.False(t, mr.Exists("cache:posts:all"))
	assert.False(t, mr.Exists("cache:posts:author:alice"))

	assert.Equal(t, []string{"second", "first"}, contents(t, posts, ""))
}
