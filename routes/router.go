package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/controllers"
	"github.com/cppla/microblog/middleware"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/templates"
	"github.com/cppla/microblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers. rc may be nil.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, rc *redis.Client) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(accessLogger(cfg), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(utils.Logger, true))
	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAgeSec,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.SessionName, store))

	r.SetHTMLTemplate(templates.Parse())

	cache := utils.NewCache(rc, time.Duration(cfg.CacheTTLSec)*time.Second)
	blacklist := utils.NewTokenBlacklist(rc)

	accounts := services.NewAccounts(db)
	posts := services.NewPosts(db, cache)
	messages := services.NewMessages(db)

	authController := controllers.NewAuthController(accounts)
	postController := controllers.NewPostController(posts)
	messageController := controllers.NewMessageController(messages)
	apiAuthController := controllers.NewAPIAuthController(accounts, cfg.JWTSecret, time.Duration(cfg.TokenTTLHrs)*time.Hour, blacklist)
	apiContentController := controllers.NewAPIContentController(posts, messages)
	statsController := controllers.NewStatsController(accounts, posts, messages)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	loginRequired := middleware.LoginRequired()
	outboxGuard := []gin.HandlerFunc{}
	if cfg.OutboxRequiresLogin {
		outboxGuard = append(outboxGuard, loginRequired)
	}

	r.GET("/", postController.Index)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/register", authController.Register)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/login", authController.Login)
	r.GET("/logout", authController.Logout)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/add_post", loginRequired, postController.AddPost)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/send_message", loginRequired, messageController.SendMessage)
	r.GET("/messages/:username", loginRequired, messageController.Messages)
	r.GET("/inbox/:username", loginRequired, messageController.Inbox)
	r.GET("/outbox/:username", append(outboxGuard, messageController.Outbox)...)
	r.GET("/:username", loginRequired, postController.UserPage)

	api := r.Group("/api/v1")
	api.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	api.GET("/stats", statsController.GetStats)

	bearer := middleware.AuthRequired(cfg.JWTSecret, blacklist)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", apiAuthController.Register)
	authGroup.POST("/login", apiAuthController.Login)
	authGroup.POST("/logout", bearer, apiAuthController.Logout)

	api.GET("/posts", apiContentController.ListPosts)
	if cfg.OutboxRequiresLogin {
		api.GET("/outbox/:username", bearer, apiContentController.Outbox)
	} else {
		api.GET("/outbox/:username", apiContentController.Outbox)
	}

	protected := api.Group("")
	protected.Use(bearer)
	protected.GET("/users/:username/posts", apiContentController.ListUserPosts)
	protected.POST("/posts", apiContentController.CreatePost)
	protected.POST("/messages", apiContentController.SendMessage)
	protected.GET("/messages/:username", apiContentController.Thread)
	protected.GET("/inbox/:username", apiContentController.Inbox)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Not found"})
	})

	return r
}

// accessLogger writes the gin access log to its own rolling file, or to the app logger when GinPath is empty.
func accessLogger(cfg config.AppConfig) *zap.Logger {
	if cfg.GinPath == "" {
		return utils.Logger
	}
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err != nil {
		utils.Sugar.Warnw("gin access log unavailable, using app logger", "path", cfg.GinPath, "error", err)
		return utils.Logger
	}
	return gl
}
