package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/microblog/utils"
)

const testSecret = "test-secret"

func authRouter(blacklist *utils.TokenBlacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(testSecret, blacklist), func(ctx *gin.Context) {
		claims, ok := Claims(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"username": APIUsername(ctx), "user_id": claims.UserID})
	})
	return r
}

func doAuth(r http.Handler, header string) (*httptest.ResponseRecorder, utils.JSONResponse) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body utils.JSONResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthRequired(t *testing.T) {
	blacklist := utils.NewTokenBlacklist(nil)
	r := authRouter(blacklist)

	token, err := utils.GenerateToken(testSecret, 3, "alice", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", 40101},
		{"not bearer", "Basic abc", 40102},
		{"empty token", "Bearer ", 40103},
		{"bad token", "Bearer nope", 40105},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doAuth(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}

	w, _ := doAuth(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice","user_id":3}`, w.Body.String())

	claims, err := utils.ParseToken(testSecret, token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	w, body := doAuth(r, "bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40104, body.Code)
}
