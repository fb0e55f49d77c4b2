package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/services"
)

// MessageController serves the private messaging pages.
type MessageController struct {
	messages *services.Messages
}

// NewMessageController creates a MessageController.
func NewMessageController(messages *services.Messages) *MessageController {
	return &MessageController{messages: messages}
}

// SendMessage shows the message form and delivers on POST.
func (m *MessageController) SendMessage(ctx *gin.Context) {
	var form forms.MessageForm
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "send_message.html", gin.H{"Title": "Send message", "Form": form})
		return
	}

	if err := forms.Bind(ctx, &form); err != nil {
		render(ctx, http.StatusOK, "send_message.html", gin.H{"Title": "Send message", "Form": form, "Errors": formErrors(err)})
		return
	}

	sender := middleware.CurrentUsername(ctx)
	_, err := m.messages.Send(ctx.Request.Context(), sender, form.Recipient, form.Message)
	switch {
	case errors.Is(err, services.ErrRecipientNotFound):
		render(ctx, http.StatusOK, "send_message.html", gin.H{
			"Title":  "Send message",
			"Form":   form,
			"Errors": forms.FieldErrors{"recipient": "Recipient not found"},
		})
		return
	case errors.Is(err, services.ErrUserNotFound):
		_ = middleware.LogOut(ctx)
		ctx.Redirect(http.StatusFound, middleware.LoginPath)
		return
	case err != nil:
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/messages/"+url.PathEscape(sender))
}

// Messages shows everything the named user sent or received.
func (m *MessageController) Messages(ctx *gin.Context) {
	m.list(ctx, "Messages of ", m.messages.Thread)
}

// Inbox shows the messages the named user received.
func (m *MessageController) Inbox(ctx *gin.Context) {
	m.list(ctx, "Inbox of ", m.messages.Inbox)
}

// Outbox shows the messages the named user sent.
func (m *MessageController) Outbox(ctx *gin.Context) {
	m.list(ctx, "Outbox of ", m.messages.Outbox)
}

func (m *MessageController) list(ctx *gin.Context, title string, query func(context.Context, string) ([]models.Message, error)) {
	username := ctx.Param("username")
	msgs, err := query(ctx.Request.Context(), username)
	if err != nil {
		renderError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "messages.html", gin.H{"Title": title + username, "Messages": msgs})
}
