package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"masseria/internal/infra/config"
	"masseria/internal/infra/obs"
)

type CatalogHTTP interface {
	Rooms(c *gin.Context)
	Availability(c *gin.Context)
	Upsells(c *gin.Context)
	StayReasons(c *gin.Context)
}

type SessionHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	SelectRoom(c *gin.Context)
	SetDates(c *gin.Context)
	SetGuest(c *gin.Context)
	AddUpsell(c *gin.Context)
	RemoveUpsell(c *gin.Context)
	SetCoupon(c *gin.Context)
	ValidateCoupon(c *gin.Context)
	Quote(c *gin.Context)
	Submit(c *gin.Context)
}

type ConfirmHTTP interface {
	Status(c *gin.Context)
}

type Handlers struct {
	Catalog CatalogHTTP
	Session SessionHTTP
	Confirm ConfirmHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Catalog != nil {
		api.GET("/rooms", h.Catalog.Rooms)
		api.GET("/availability/:roomID", h.Catalog.Availability)
		api.GET("/upsells", h.Catalog.Upsells)
		api.GET("/stay-reasons", h.Catalog.StayReasons)
	}
	if h.Session != nil {
		sessions := api.Group("/sessions")
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.PUT("/:id/room", h.Session.SelectRoom)
		sessions.PUT("/:id/dates", h.Session.SetDates)
		sessions.PUT("/:id/guest", h.Session.SetGuest)
		sessions.POST("/:id/upsells", h.Session.AddUpsell)
		sessions.DELETE("/:id/upsells/:upsellID", h.Session.RemoveUpsell)
		sessions.PUT("/:id/coupon", h.Session.SetCoupon)
		sessions.POST("/:id/coupon/validate", h.Session.ValidateCoupon)
		sessions.GET("/:id/quote", h.Session.Quote)
		sessions.POST("/:id/submit", h.Session.Submit)
	}
	if h.Confirm != nil {
		api.GET("/bookings/status/:sessionID", h.Confirm.Status)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
