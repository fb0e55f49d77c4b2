package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

// StatsController provides site statistics.
type StatsController struct {
	accounts *services.Accounts
	posts    *services.Posts
	messages *services.Messages
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(accounts *services.Accounts, posts *services.Posts, messages *services.Messages) *StatsController {
	return &StatsController{accounts: accounts, posts: posts, messages: messages}
}

// GetStats returns aggregate counts for the site.
func (s *StatsController) GetStats(ctx *gin.Context) {
	c := ctx.Request.Context()

	userCount, err := s.accounts.Count(c)
	if err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		utils.Sugar.Warnw("count users failed", "error", err)
		userCount = 0
	}

	postCount, err := s.posts.Count(c)
	if err != nil {
		utils.Sugar.Warnw("count posts failed", "error", err)
		postCount = 0
	}

	messageCount, err := s.messages.Count(c)
	if err != nil {
		utils.Sugar.Warnw("count messages failed", "error", err)
		messageCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":    userCount,
		"post_count":    postCount,
		"message_count": messageCount,
	})
}
