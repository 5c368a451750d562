package router

import (
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/config"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/handler"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/middleware"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	clientSvc := service.NewClientService(clientRepo)
	staffSvc := service.NewStaffService(staffRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	inventorySvc := service.NewInventoryService(catalogRepo, movementRepo)
	agendaSvc := service.NewAgendaService(appointmentRepo, rdb, cfg)
	bookingSvc := service.NewBookingService(appointmentRepo, comandaRepo, clientRepo, catalogRepo, staffRepo, agendaSvc)
	comandaSvc := service.NewComandaService(comandaRepo, catalogRepo, clientRepo, staffRepo, cfg)
	settlementSvc := service.NewSettlementService(comandaRepo, catalogRepo, clientRepo, appointmentRepo, transactionRepo, movementRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	bookingsH := handler.NewBookingsHandler(bookingSvc)
	agendaH := handler.NewAgendaHandler(agendaSvc)
	comandasH := handler.NewComandasHandler(comandaSvc, settlementSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc, inventorySvc)
	clientsH := handler.NewClientsHandler(clientSvc, staffSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: barber, manager, admin — declared per endpoint
		anyStaff := middleware.RequireRole("barber", "manager", "admin")
		managers := middleware.RequireRole("manager", "admin")

		v1.POST("/bookings", anyStaff, bookingsH.Create)
		v1.GET("/agenda", anyStaff, agendaH.ListDay)
		v1.GET("/agenda/grid", anyStaff, agendaH.Grid)

		comandas := v1.Group("/comandas", anyStaff)
		{
			comandas.POST("", comandasH.Open)
			comandas.GET("", comandasH.List)
			comandas.GET("/:id", comandasH.Get)
			comandas.POST("/:id/items", comandasH.AddItem)
			comandas.DELETE("/:id/items/:itemId", comandasH.RemoveItem)
			comandas.PATCH("/:id/items/:itemId/responsible", comandasH.ReassignResponsible)
			comandas.PATCH("/:id/discount", comandasH.SetDiscount)
			comandas.POST("/:id/settle", comandasH.Settle)
		}
		// Cancelling a tab discards work already performed — manager and up
		v1.POST("/comandas/:id/cancel", managers, comandasH.Cancel)

		v1.POST("/clients", anyStaff, clientsH.Create)
		v1.GET("/clients", anyStaff, clientsH.List)
		v1.GET("/staff", anyStaff, clientsH.ListStaff)

		v1.GET("/catalog", anyStaff, catalogH.List)
		catalog := v1.Group("/catalog", managers)
		{
			catalog.POST("", catalogH.Create)
			catalog.PUT("/:id", catalogH.Update)
			catalog.PATCH("/:id/stock", catalogH.AdjustStock)
		}

		v1.GET("/inventory/alerts", managers, catalogH.StockAlerts)
		v1.GET("/transactions", managers, comandasH.ListTransactions)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
