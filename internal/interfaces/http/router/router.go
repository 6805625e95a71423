package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smbc/backend/internal/domain/ledger"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/logger"
	"github.com/smbc/backend/internal/interfaces/http/dto"
	"github.com/smbc/backend/internal/interfaces/http/handler"
	"github.com/smbc/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Config holds the HTTP surface settings
type Config struct {
	ServiceName    string
	TracingEnabled bool
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	IdempotencyTTL time.Duration
	TrustedProxies []string
}

// Deps are the collaborators shared by the middleware chain
type Deps struct {
	Logger      *zap.Logger
	Tokens      middleware.TokenValidator
	Idempotency shared.IdempotencyStore
}

// Handlers are the endpoint handlers
type Handlers struct {
	System   *handler.SystemHandler
	Ledger   *handler.LedgerHandler
	Booking  *handler.BookingHandler
	Report   *handler.ReportHandler
	Activity *handler.ActivityHandler
}

// New builds the gin engine with the global middleware chain, the health
// endpoint and one authenticated group per venture.
func New(cfg Config, deps Deps, h Handlers) (*gin.Engine, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled)...)
	engine.Use(
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.Secure(),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeRouteNotFound, "Route not found"))
	})

	engine.GET("/health", h.System.Health)

	auth := middleware.JWTAuth(deps.Tokens, deps.Logger)
	idem := middleware.Idempotency(deps.Idempotency, cfg.IdempotencyTTL)

	NewRouter(engine).
		Register(&constructionRoutes{auth: auth, idem: idem, ledger: h.Ledger, activities: h.Activity, reports: h.Report}).
		Register(&carenderiaRoutes{auth: auth, idem: idem, ledger: h.Ledger, reports: h.Report}).
		Register(&cateringRoutes{auth: auth, idem: idem, ledger: h.Ledger, bookings: h.Booking, reports: h.Report}).
		Setup()

	return engine, nil
}

// ventureGroup opens /{venture} behind authentication and the department gate
func ventureGroup(rg *gin.RouterGroup, venture ledger.Venture, auth gin.HandlerFunc) *gin.RouterGroup {
	return rg.Group("/"+venture.String(), auth, middleware.VentureAccess(venture))
}

func registerReports(g *gin.RouterGroup, venture ledger.Venture, reports *handler.ReportHandler) {
	r := g.Group("/reports")
	r.GET("/months", reports.Months(venture))
	r.GET("/trial-balance", reports.TrialBalance(venture))
	r.GET("/balance-sheet", reports.BalanceSheet(venture))
	r.GET("/wages", reports.Wages(venture))
	r.GET("/:kind/export", reports.Export(venture))
}

func registerEntries(g *gin.RouterGroup, path string, venture ledger.Venture, idem gin.HandlerFunc, h *handler.LedgerHandler) {
	g.POST(path, idem, h.RecordEntries(venture))
	g.GET(path, h.ListEntries(venture))
	g.PUT(path+"/:id", middleware.RequireEditor(), h.UpdateEntry(venture))
	g.DELETE(path+"/:id", middleware.RequireEditor(), h.DeleteEntry(venture))
}

type constructionRoutes struct {
	auth, idem gin.HandlerFunc
	ledger     *handler.LedgerHandler
	activities *handler.ActivityHandler
	reports    *handler.ReportHandler
}

func (r *constructionRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	v := ledger.VentureConstruction
	g := ventureGroup(rg, v, r.auth)

	g.POST("/projects", r.ledger.CreateProject)
	g.GET("/projects", r.ledger.ListProjects)
	g.GET("/projects/:id", r.ledger.GetProject)
	g.GET("/projects/:id/overview", r.reports.ProjectOverview)

	g.POST("/projects/:id/activities", r.idem, r.activities.Record)
	g.GET("/projects/:id/activities", r.activities.List)
	g.PUT("/projects/:id/activities/:activityId", middleware.RequireEditor(), r.activities.Update)
	g.DELETE("/projects/:id/activities/:activityId", middleware.RequireEditor(), r.activities.Delete)

	g.POST("/materials", r.idem, r.ledger.RecordMaterials)
	g.POST("/labor", r.idem, r.ledger.RecordLabor)
	g.POST("/gasoline", r.idem, r.ledger.RecordAmounts("gasoline"))
	g.POST("/documents", r.idem, r.ledger.RecordAmounts("documents"))
	g.POST("/obligations", r.idem, r.ledger.RecordAmounts("obligations"))
	g.GET("/entries", r.ledger.ListEntries(v))
	g.PUT("/entries/:id", middleware.RequireEditor(), r.ledger.UpdateEntry(v))
	g.DELETE("/entries/:id", middleware.RequireEditor(), r.ledger.DeleteEntry(v))

	g.GET("/invoice-numbers/next", r.ledger.PeekInvoiceNumber)

	// construction balance sheets are per project
	rep := g.Group("/reports")
	rep.GET("/months", r.reports.Months(v))
	rep.GET("/trial-balance", r.reports.TrialBalance(v))
	rep.GET("/balance-sheet", r.reports.ProjectBalanceSheet)
	rep.GET("/balance-sheet/export", r.reports.ExportProjectBalanceSheet)
	rep.GET("/:kind/export", r.reports.Export(v))
}

type carenderiaRoutes struct {
	auth, idem gin.HandlerFunc
	ledger     *handler.LedgerHandler
	reports    *handler.ReportHandler
}

func (r *carenderiaRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	v := ledger.VentureCarenderia
	g := ventureGroup(rg, v, r.auth)

	registerEntries(g, "/transactions", v, r.idem, r.ledger)
	g.POST("/wages", r.idem, r.ledger.RecordWages(v))

	registerReports(g, v, r.reports)
}

type cateringRoutes struct {
	auth, idem gin.HandlerFunc
	ledger     *handler.LedgerHandler
	bookings   *handler.BookingHandler
	reports    *handler.ReportHandler
}

func (r *cateringRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	v := ledger.VentureCatering
	g := ventureGroup(rg, v, r.auth)

	registerEntries(g, "/expenses", v, r.idem, r.ledger)
	g.POST("/wages", r.idem, r.ledger.RecordWages(v))

	b := g.Group("/bookings")
	b.POST("", r.bookings.Create)
	b.GET("", r.bookings.List)
	b.GET("/:id", r.bookings.Get)
	b.PUT("/:id/status", r.bookings.ChangeStatus)
	b.POST("/:id/payments", r.idem, r.bookings.AddPayment)
	b.GET("/:id/payments", r.bookings.ListPayments)
	b.GET("/:id/payments/total", r.bookings.PaymentsTotal)

	registerReports(g, v, r.reports)
}
