package router

import (
	"time"

	"github.com/Guntherdrb/paratodos-gemini/internal/config"
	"github.com/Guntherdrb/paratodos-gemini/internal/handler"
	"github.com/Guntherdrb/paratodos-gemini/internal/infra"
	"github.com/Guntherdrb/paratodos-gemini/internal/middleware"
	"github.com/Guntherdrb/paratodos-gemini/internal/repository"
	"github.com/Guntherdrb/paratodos-gemini/internal/service"
	"github.com/Guntherdrb/paratodos-gemini/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.Storage, extractorCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	tiendaRepo := repository.NewTiendaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	tiendaSvc := service.NewTiendaService(tiendaRepo, storage, dispatcher)
	productoSvc := service.NewProductoService(productoRepo, tiendaRepo, storage)
	leadSvc := service.NewLeadService(leadRepo, productoRepo, tiendaRepo, rdb, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	tiendasH := handler.NewTiendasHandler(tiendaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	leadsH := handler.NewLeadsHandler(leadSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	// The whole surface is public: shoppers and merchants interact without
	// accounts, keyed only by slugs and ids.

	r.GET("/health", handler.Health(db, rdb, extractorCB))

	api := r.Group("/api")
	{
		api.GET("/tiendas/lista", tiendasH.Listar)
		api.GET("/tienda/:slug", tiendasH.ObtenerPorSlug)
		api.POST("/tiendas", tiendasH.Crear)

		api.GET("/productos/:slug", productosH.ListarPorSlug)
		api.GET("/producto/:id", productosH.ObtenerPorID)
		api.POST("/crear-producto", productosH.Crear)

		api.POST("/leads", leadsH.Crear)
		api.GET("/leads/:slug", leadsH.ContarPorSlug)
	}

	r.GET("/uploads/:slug/:file", handler.ServeUpload(storage))

	return r
}
