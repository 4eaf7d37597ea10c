package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"hotelier/internal/infra/config"
	"hotelier/internal/infra/obs"
)

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type AvailabilityHTTP interface {
	Window(c *gin.Context)
	Rolling(c *gin.Context)
	Split(c *gin.Context)
	Snapshot(c *gin.Context)
	Export(c *gin.Context)
}

type DraftHTTP interface {
	Create(c *gin.Context)
}

type Handlers struct {
	Quote        QuoteHTTP
	Availability AvailabilityHTTP
	Draft        DraftHTTP
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
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
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
	if h.Quote != nil {
		api.GET("/properties/:id/quote", h.Quote.Quote)
	}
	if h.Availability != nil {
		api.GET("/properties/:id/availability", h.Availability.Window)
		api.GET("/properties/:id/availability/rolling", h.Availability.Rolling)
		api.GET("/properties/:id/availability/split", h.Availability.Split)
		api.GET("/properties/:id/availability/snapshot", h.Availability.Snapshot)
		api.POST("/properties/:id/availability/export", h.Availability.Export)
	}
	if h.Draft != nil {
		api.POST("/properties/:id/drafts", h.Draft.Create)
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
