package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

// APIContentController exposes posts and private messages as JSON.
type APIContentController struct {
	posts    *services.Posts
	messages *services.Messages
}

// NewAPIContentController creates an APIContentController.
func NewAPIContentController(posts *services.Posts, messages *services.Messages) *APIContentController {
	return &APIContentController{posts: posts, messages: messages}
}

// ListPosts returns every post, newest first.
func (a *APIContentController) ListPosts(ctx *gin.Context) {
	posts, err := a.posts.List(ctx.Request.Context())
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50010, "failed to retrieve posts", err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// ListUserPosts returns the posts written by the user in the path.
func (a *APIContentController) ListUserPosts(ctx *gin.Context) {
	posts, err := a.posts.ListByAuthor(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50011, "failed to retrieve posts", err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// CreatePost publishes a post as the token's user.
func (a *APIContentController) CreatePost(ctx *gin.Context) {
	var req forms.PostForm
	if err := forms.Bind(ctx, &req); err != nil {
		utils.ValidationError(ctx, 40010, forms.Errors(err))
		return
	}

	post, err := a.posts.Create(ctx.Request.Context(), middleware.APIUsername(ctx), req.Content)
	if errors.Is(err, services.ErrUserNotFound) {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "account no longer exists")
		return
	}
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50012, "failed to create post", err)
		return
	}
	utils.Created(ctx, post)
}

// SendMessage delivers a private message from the token's user.
func (a *APIContentController) SendMessage(ctx *gin.Context) {
	var req forms.MessageForm
	if err := forms.Bind(ctx, &req); err != nil {
		utils.ValidationError(ctx, 40020, forms.Errors(err))
		return
	}

	msg, err := a.messages.Send(ctx.Request.Context(), middleware.APIUsername(ctx), req.Recipient, req.Message)
	switch {
	case errors.Is(err, services.ErrRecipientNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "recipient not found")
		return
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(ctx, http.StatusUnauthorized, 40108, "account no longer exists")
		return
	case err != nil:
		apiFailure(ctx, http.StatusInternalServerError, 50020, "failed to send message", err)
		return
	}
	utils.Created(ctx, msg)
}

// Thread returns every message the user in the path sent or received.
func (a *APIContentController) Thread(ctx *gin.Context) {
	msgs, err := a.messages.Thread(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50021, "failed to retrieve messages", err)
		return
	}
	utils.Success(ctx, gin.H{"items": msgs})
}

// Inbox returns the messages the user in the path received.
func (a *APIContentController) Inbox(ctx *gin.Context) {
	msgs, err := a.messages.Inbox(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50022, "failed to retrieve messages", err)
		return
	}
	utils.Success(ctx, gin.H{"items": msgs})
}

// Outbox returns the messages the user in the path sent.
func (a *APIContentController) Outbox(ctx *gin.Context) {
	msgs, err := a.messages.Outbox(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50023, "failed to retrieve messages", err)
		return
	}
	utils.Success(ctx, gin.H{"items": msgs})
}
