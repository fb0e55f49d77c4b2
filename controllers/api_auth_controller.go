package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/microblog/forms"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

// APIAuthController handles token based authentication for API clients.
type APIAuthController struct {
	accounts  *services.Accounts
	secret    string
	tokenTTL  time.Duration
	blacklist *utils.TokenBlacklist
}

// NewAPIAuthController creates an APIAuthController issuing tokens valid for tokenTTL.
func NewAPIAuthController(accounts *services.Accounts, secret string, tokenTTL time.Duration, blacklist *utils.TokenBlacklist) *APIAuthController {
	return &APIAuthController{
		accounts:  accounts,
		secret:    secret,
		tokenTTL:  tokenTTL,
		blacklist: blacklist,
	}
}

// Register creates a user account.
func (a *APIAuthController) Register(ctx *gin.Context) {
	var req forms.RegistrationForm
	if err := forms.Bind(ctx, &req); err != nil {
		utils.ValidationError(ctx, 40001, forms.Errors(err))
		return
	}

	user, err := a.accounts.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, services.ErrUserExists) {
		utils.Error(ctx, http.StatusConflict, 40901, "user already exists")
		return
	}
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50001, "failed to create user", err)
		return
	}
	utils.Created(ctx, user)
}

// Login verifies credentials and issues a bearer token.
func (a *APIAuthController) Login(ctx *gin.Context) {
	var req forms.LoginForm
	if err := forms.Bind(ctx, &req); err != nil {
		utils.ValidationError(ctx, 40003, forms.Errors(err))
		return
	}

	user, err := a.accounts.Authenticate(ctx.Request.Context(), req.Name, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50002, "failed to authenticate", err)
		return
	}

	token, err := utils.GenerateToken(a.secret, user.ID, user.Name, a.tokenTTL)
	if err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50004, "failed to generate token", err)
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token until it expires.
func (a *APIAuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(a.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := a.blacklist.Revoke(ctx.Request.Context(), claims.ID, expiresAt); err != nil {
		apiFailure(ctx, http.StatusInternalServerError, 50005, "failed to revoke token", err)
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// apiFailure logs err and writes a JSON error envelope.
func apiFailure(ctx *gin.Context, status, code int, message string, err error) {
	utils.Sugar.Errorw(message,
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"request_id", ctx.GetString(middleware.ContextRequestIDKey),
		"error", err,
	)
	utils.Error(ctx, status, code, message)
}
