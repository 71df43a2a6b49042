package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/todolist-auth/internal/interface/http"
	"github.com/oksasatya/todolist-auth/internal/interface/middleware"
)

// SecurityModule wires sign in, registration, activation and sign out.
// Public: GET/POST /login, GET/POST /register, GET /validate/:token, POST /validate/resend, POST /logout
type SecurityModule struct {
	Handler *handlers.SecurityHandler
	Redis   *redis.Client
}

func NewSecurityModule(h *handlers.SecurityHandler, rdb *redis.Client) *SecurityModule {
	return &SecurityModule{Handler: h, Redis: rdb}
}

func (m *SecurityModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)    // 10 req/min per IP
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)  // 5 req/min per IP
	validateLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil) // 30 req/min per IP
	resendLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/login", middleware.WithPrincipal(m.Handler.LoginPage))
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/register", m.Handler.RegisterPage)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.GET("/validate/:token", validateLimiter, m.Handler.Validate)
	rg.POST("/validate/resend", resendLimiter, m.Handler.Resend)
	rg.POST("/logout", middleware.WithPrincipal(m.Handler.Logout))
}
