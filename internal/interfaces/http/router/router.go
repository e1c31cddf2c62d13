// Package router 提供 HTTP 路由配置
package router

import (
	"idea-relay/internal/config"
	"idea-relay/internal/domain/repository"
	"idea-relay/internal/interfaces/http/handler"
	"idea-relay/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config

	ideaHandler   *handler.IdeaHandler
	healthHandler *handler.HealthHandler
	registry      repository.InflightRegistry
}

// New 创建新的路由器；registry 为空时不启用会话约束
func New(
	cfg *config.Config,
	ideaHandler *handler.IdeaHandler,
	healthHandler *handler.HealthHandler,
	registry repository.InflightRegistry,
) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:        gin.New(),
		cfg:           cfg,
		ideaHandler:   ideaHandler,
		healthHandler: healthHandler,
		registry:      registry,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/ready", r.healthHandler.Ready)
	r.engine.GET("/live", r.healthHandler.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	var guard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if r.cfg.Session.Enabled {
		guard = middleware.SessionGuard(r.registry, r.cfg.Session.TTL)
	}
	r.engine.POST("/generate-idea", guard, r.ideaHandler.GenerateIdea)
}
