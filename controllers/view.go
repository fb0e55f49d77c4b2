package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/utils"
)

// render executes a page template with the values every page needs (current user, flashes, errors).
func render(ctx *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.CurrentUsername(ctx)
	data["Flashes"] = middleware.Flashes(ctx)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.FieldErrors{}
	}
	ctx.HTML(status, page, data)
}

// renderError logs err with the route and shows the generic error page.
func renderError(ctx *gin.Context, err error) {
	utils.Sugar.Errorw("request failed",
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"request_id", ctx.GetString(middleware.ContextRequestIDKey),
		"error", err,
	)
	render(ctx, http.StatusInternalServerError, "error.html", gin.H{"Title": "Error"})
}

// formErrors never returns nil so templates can index it safely.
func formErrors(err error) forms.FieldErrors {
	if fe := forms.Errors(err); fe != nil {
		return fe
	}
	return forms.FieldErrors{}
}
