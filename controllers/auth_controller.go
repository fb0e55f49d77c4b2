package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
)

// AuthController serves the registration, login and logout pages.
type AuthController struct {
	accounts *services.Accounts
}

// NewAuthController creates an AuthController.
func NewAuthController(accounts *services.Accounts) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register shows the registration form and creates the account on POST.
func (a *AuthController) Register(ctx *gin.Context) {
	var form forms.RegistrationForm
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": form})
		return
	}

	if err := forms.Bind(ctx, &form); err != nil {
		render(ctx, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": form, "Errors": formErrors(err)})
		return
	}

	_, err := a.accounts.Register(ctx.Request.Context(), form.Name, form.Email, form.Password)
	if errors.Is(err, services.ErrUserExists) {
		render(ctx, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": form, "Message": "User already exists"})
		return
	}
	if err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// Login shows the login form and starts a session on POST.
func (a *AuthController) Login(ctx *gin.Context) {
	var form forms.LoginForm
	if ctx.Request.Method != http.MethodPost {
		render(ctx, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": form})
		return
	}

	if err := forms.Bind(ctx, &form); err != nil {
		render(ctx, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": form, "Errors": formErrors(err)})
		return
	}

	user, err := a.accounts.Authenticate(ctx.Request.Context(), form.Name, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		render(ctx, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": form, "Message": "Wrong data!"})
		return
	}
	if err != nil {
		renderError(ctx, err)
		return
	}

	if err := middleware.LogIn(ctx, user.Name); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// Logout drops the session and returns to the login page.
func (a *AuthController) Logout(ctx *gin.Context) {
	if err := middleware.LogOut(ctx); err != nil {
		renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, middleware.LoginPath)
}
