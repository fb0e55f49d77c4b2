package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

const postsCachePrefix = "cache:posts:"

// Posts publishes and lists posts. Lists are served from the cache when one is configured.
type Posts struct {
	db    *gorm.DB
	cache *utils.Cache
	now   func() time.Time
}

// NewPosts creates a Posts service. cache may be nil.
func NewPosts(db *gorm.DB, cache *utils.Cache) *Posts {
	return &Posts{db: db, cache: cache, now: time.Now}
}

// Create publishes content as authorName, stamped with the current server time.
func (p *Posts) Create(ctx context.Context, authorName, content string) (*models.Post, error) {
	author, err := findUserByName(ctx, p.db, authorName)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Content:  content,
		AuthorID: author.ID,
		Author:   *author,
		Date:     p.now(),
	}
	if err := p.db.WithContext(ctx).Omit("Author").Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	p.cache.InvalidateByPrefix(ctx, postsCachePrefix)
	return &post, nil
}

// List returns every post, newest first.
func (p *Posts) List(ctx context.Context) ([]models.Post, error) {
	key := postsCachePrefix + "all"
	posts := []models.Post{}
	if p.cache.GetJSON(ctx, key, &posts) {
		return posts, nil
	}

	if err := p.ordered(ctx).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	p.cache.SetJSON(ctx, key, posts)
	return posts, nil
}

// ListByAuthor returns the posts written by name. An unknown name yields an empty list.
func (p *Posts) ListByAuthor(ctx context.Context, name string) ([]models.Post, error) {
	key := postsCachePrefix + "author:" + name
	posts := []models.Post{}
	if p.cache.GetJSON(ctx, key, &posts) {
		return posts, nil
	}

	author, err := findUserByName(ctx, p.db, name)
	if errors.Is(err, ErrUserNotFound) {
		return posts, nil
	}
	if err != nil {
		return nil, err
	}

	if err := p.ordered(ctx).Where("author_id = ?", author.ID).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts by %q: %w", name, err)
	}
	p.cache.SetJSON(ctx, key, posts)
	return posts, nil
}

// Count returns the number of posts.
func (p *Posts) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}

func (p *Posts) ordered(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).
		Preload("Author").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
}
