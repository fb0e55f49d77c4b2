package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
)

// PostController serves the post timeline pages and the new-post form.
type PostController struct {
	posts *services.Posts
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.Posts) *PostController {
	return &PostController{posts: posts}
}

// Index lists every post.
func (p *PostController) Index(ctx *gin.Context) {
	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		renderError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Title": "All posts", "Posts": posts})
}

// UserPage lists the posts of the user named in the path.
func (p *PostController) UserPage(ctx *gin.Context) {
	username := ctx.Param("username")
	posts, err := p.posts.ListByAuthor(ctx.Request.Context(), username)
	if err != nil {
		renderError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Title": "Posts by " + username, "Posts": posts})
}

// AddPost shows the post form and publishes on POST.
func (p *PostController) AddPost(ctx *gin.Context) {
	var form forms.PostForm
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "new_post.html", gin.H{"Title": "New post", "Form": form})
		return
	}

	if err := forms.Bind(ctx, &form); err != nil {
		render(ctx, http.StatusOK, "new_post.html", gin.H{"Title": "New post", "Form": form, "Errors": formErrors(err)})
		return
	}

	_, err := p.posts.Create(ctx.Request.Context(), middleware.CurrentUsername(ctx), form.Content)
	if errors.Is(err, services.ErrUserNotFound) {
		// the session outlived its account
		_ = middleware.LogOut(ctx)
		ctx.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}
