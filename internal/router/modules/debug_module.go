package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todolist-auth/internal/interface/middleware"
)

type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar counters, rate-limited per IP; private networks are not limited
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
