package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	handlers "github.com/oksasatya/todolist-auth/internal/interface/http"
	"github.com/oksasatya/todolist-auth/internal/interface/middleware"
)

// AccountModule wires the signed-in landing pages.
// Protected: GET /profile; admin only: GET /admin, GET /admin/accounts/search
type AccountModule struct {
	Handler *handlers.AccountHandler
	Redis   *redis.Client
}

func NewAccountModule(h *handlers.AccountHandler, rdb *redis.Client) *AccountModule {
	return &AccountModule{Handler: h, Redis: rdb}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByAccount(), nil)

	rg.GET("/profile", middleware.RequirePrincipal(m.Handler.Profile))
	rg.GET("/admin", middleware.RequireRole(entity.RoleAdmin, m.Handler.Admin))
	rg.GET("/admin/accounts/search", searchLimiter, middleware.RequireRole(entity.RoleAdmin, m.Handler.Search))
}
