package router

import "github.com/gin-gonic/gin"

// Registry collects page modules (mounted at /) and API modules (mounted at /api)
// and the middlewares shared by both.
type Registry struct {
	Engine      *gin.Engine
	Web         *gin.RouterGroup
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	apiModules  []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Web: engine.Group("/"), API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddAPI(mod Module) {
	r.apiModules = append(r.apiModules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Web.Use(r.middlewares...)
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Web)
	}
	for _, m := range r.apiModules {
		m.Register(r.API)
	}
}
