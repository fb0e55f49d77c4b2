package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/login", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, strings.Join(Flashes(ctx), "|"))
	})
	r.POST("/login", func(ctx *gin.Context) {
		if err := LogIn(ctx, ctx.Query("name")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Status(http.StatusNoContent)
	})
	r.GET("/logout", func(ctx *gin.Context) {
		_ = LogOut(ctx)
		ctx.Status(http.StatusNoContent)
	})
	r.GET("/state", func(ctx *gin.Context) {
		v, ok := sessions.Default(ctx).Get(SessionLoggedInKey).(bool)
		ctx.String(http.StatusOK, fmt.Sprintf("set=%t value=%t", ok, v))
	})
	r.GET("/private", LoginRequired(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello "+CurrentUsername(ctx))
	})
	return r
}

// browser replays cookies from previous responses, like a browser would.
type browser struct {
	r       http.Handler
	cookies []*http.Cookie
}

func (b *browser) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return w
}

func TestLoginRequired(t *testing.T) {
	b := &browser{r: sessionRouter()}

	w := b.do(http.MethodGet, "/private")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/login")
	assert.Equal(t, "Please log in first.", w.Body.String())

	w = b.do(http.MethodGet, "/login")
	assert.Empty(t, w.Body.String(), "flashes are shown once")

	require.Equal(t, http.StatusNoContent, b.do(http.MethodPost, "/login?name=alice").Code)
	w = b.do(http.MethodGet, "/private")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello alice", w.Body.String())

	b.do(http.MethodGet, "/logout")
	w = b.do(http.MethodGet, "/private")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLogOutSetsFlagFalse(t *testing.T) {
	b := &browser{r: sessionRouter()}
	assert.Equal(t, "set=false value=false", b.do(http.MethodGet, "/state").Body.String())

	require.Equal(t, http.StatusNoContent, b.do(http.MethodPost, "/login?name=alice").Code)
	assert.Equal(t, "set=true value=true", b.do(http.MethodGet, "/state").Body.String())

	b.do(http.MethodGet, "/logout")
	assert.Equal(t, "set=true value=false", b.do(http.MethodGet, "/state").Body.String())

	// a visitor who never logged in ends up with the same explicit flag
	fresh := &browser{r: sessionRouter()}
	fresh.do(http.MethodGet, "/logout")
	assert.Equal(t, "set=true value=false", fresh.do(http.MethodGet, "/state").Body.String())
}
