package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"barbershop-booking/internal/handler/api"
	"barbershop-booking/internal/handler/middleware"
	"barbershop-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
}

type Middlewares struct {
	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter // nil disables limiting
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var public []gin.HandlerFunc
	if mw.RateLimiter != nil {
		public = append(public, mw.RateLimiter.Middleware())
	}
	staff := []gin.HandlerFunc{mw.Auth.RequireStaff()}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/barbers/:id/availability", Handler: h.Availability.ListSlots, Mw: public},
			{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.Create, Mw: public},

			{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Booking.Get, Mw: staff},
			{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.Booking.Cancel, Mw: staff},
			{Method: http.MethodGet, Path: "/barbers/:id/bookings", Handler: h.Booking.ListByBarberDate, Mw: staff},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
