package router

import (
	"backend/internal/app/attachment"
	"backend/internal/app/folder"
	"backend/internal/app/health"
	"backend/internal/app/reconcile"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(logger *zap.Logger) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.Identity())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterAttachmentRoutes(handler attachment.Handler) {
	attachment.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterReconcileRoutes(handler reconcile.Handler) {
	reconcile.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterFolderRoutes(handler folder.Handler) {
	folder.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
