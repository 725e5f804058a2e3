package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/web"
	"gorm.io/gorm"
)

// Services bundles the application services built on one database handle.
type Services struct {
	Auth  *services.AuthService
	Todos *services.TodoService
}

// NewServices wires repositories and services for db.
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	tokens := services.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	return &Services{
		Auth:  services.NewAuthService(repository.NewUserRepository(db), tokens, cfg.BcryptCost),
		Todos: services.NewTodoService(repository.NewTodoRepository(db)),
	}
}

// NewRouter builds the routing table.
func NewRouter(cfg *config.Config, svc *Services) (*gin.Engine, error) {
	defaultLimiter, err := middleware.NewRateLimiter(cfg.RateLimitDefault)
	if err != nil {
		return nil, fmt.Errorf("default rate limit: %w", err)
	}
	usersLimiter, err := middleware.NewRateLimiter(cfg.RateLimitUsers)
	if err != nil {
		return nil, fmt.Errorf("users rate limit: %w", err)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	// With no trusted proxies ClientIP is the peer address, so clients cannot pick their
	// rate limit key through X-Forwarded-For.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.SetHTMLTemplate(templates)

	userHandler := handlers.NewUserHandler(svc.Auth)
	todoHandler := handlers.NewTodoHandler(svc.Todos)
	webHandler := handlers.NewWebHandler(svc.Auth, svc.Todos)

	requireAuth := middleware.RequireAPIAuth(svc.Auth)
	requireSession := middleware.RequireSession(svc.Auth)

	// The users endpoints carry their own limit in place of the default one.
	limited := r.Group("", defaultLimiter.Middleware())

	// Health check endpoint
	limited.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	// HTML pages
	limited.GET("/register", webHandler.RegisterPage)
	limited.POST("/register", webHandler.Register)
	limited.GET("/login", webHandler.LoginPage)
	limited.POST("/login", webHandler.Login)
	limited.GET("/logout", requireSession, webHandler.Logout)
	limited.GET("/", requireSession, webHandler.Index)

	users := r.Group(constants.UsersPath, usersLimiter.Middleware())
	{
		users.POST("", userHandler.Register)
		users.GET("/token", requireAuth, userHandler.GetAuthToken)
		users.POST("/token", requireAuth, userHandler.GetAuthToken)
		users.GET("/:id", userHandler.GetUser)
	}

	todos := limited.Group(constants.TodosPath)
	{
		todos.GET("", requireAuth, todoHandler.ListTodos)
		todos.POST("", requireAuth, todoHandler.CreateTodo)
		todos.GET("/:id", middleware.RequireTodoAccess(svc.Todos, false), todoHandler.GetTodo)
		todos.PUT("/:id", requireAuth, middleware.RequireTodoAccess(svc.Todos, cfg.TodoOwnershipCheck), todoHandler.UpdateTodo)
		todos.DELETE("/:id", requireAuth, middleware.RequireTodoAccess(svc.Todos, cfg.TodoOwnershipCheck), todoHandler.DeleteTodo)
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "")
	})

	return r, nil
}
