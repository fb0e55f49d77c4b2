package middleware

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys written on login.
const (
	SessionUsernameKey = "username"
	SessionLoggedInKey = "logged_in"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

func init() {
	// flashes are stored as []interface{} inside the gob-encoded cookie
	gob.Register([]interface{}{})
}

// LoginRequired lets the request through only when the session's logged_in flag is exactly true.
// Otherwise it flashes a notice and redirects to the login page without running the handler.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if IsLoggedIn(ctx) {
			ctx.Next()
			return
		}
		session := sessions.Default(ctx)
		session.AddFlash("Please log in first.")
		_ = session.Save()
		ctx.Redirect(http.StatusFound, LoginPath)
		ctx.Abort()
	}
}

// IsLoggedIn reports whether the session carries logged_in == true.
func IsLoggedIn(ctx *gin.Context) bool {
	v, ok := sessions.Default(ctx).Get(SessionLoggedInKey).(bool)
	return ok && v
}

// CurrentUsername returns the session username, or "" for anonymous visitors.
func CurrentUsername(ctx *gin.Context) string {
	if !IsLoggedIn(ctx) {
		return ""
	}
	name, _ := sessions.Default(ctx).Get(SessionUsernameKey).(string)
	return name
}

// LogIn records an authenticated user in the session.
func LogIn(ctx *gin.Context, username string) error {
	session := sessions.Default(ctx)
	session.Set(SessionUsernameKey, username)
	session.Set(SessionLoggedInKey, true)
	return session.Save()
}

// LogOut clears the whole session and explicitly marks it logged out.
func LogOut(ctx *gin.Context) error {
	session := sessions.Default(ctx)
	session.Clear()
	session.Set(SessionLoggedInKey, false)
	return session.Save()
}

// Flashes pops pending flash messages.
func Flashes(ctx *gin.Context) []string {
	session := sessions.Default(ctx)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
