package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/todolist-auth/config"
	"github.com/oksasatya/todolist-auth/internal/container"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.Load()
	cfg.DebugMetricsEnabled = debug
	container.SetConfig(cfg)
	container.SetLogger(helpers.NewNopLogger())
	container.SetRedis(rdb)

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}

func routeSet(engine *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, r := range engine.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestInitModules_RegistersRoutes(t *testing.T) {
	routes := routeSet(newEngine(t, true))

	for _, want := range []string{
		"GET /login",
		"POST /login",
		"GET /register",
		"POST /register",
		"GET /validate/:token",
		"POST /validate/resend",
		"POST /logout",
		"GET /profile",
		"GET /admin",
		"GET /admin/accounts/search",
		"GET /api/debug/vars",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestInitModules_DebugVars(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(t, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accounts_registered")
}

func TestInitModules_DebugDisabled(t *testing.T) {
	routes := routeSet(newEngine(t, false))

	assert.False(t, routes["GET /api/debug/vars"])
}
