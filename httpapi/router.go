package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// DefaultAllowedOrigin is the frontend dev server allowed by CORS unless configured otherwise.
const DefaultAllowedOrigin = "http://localhost:3000"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Handler *Handler

	// AllowedOrigins for CORS, DefaultAllowedOrigin if empty.
	AllowedOrigins []string

	// ServiceName enables the otelgin tracing middleware when not empty.
	ServiceName string
}

// NewRouter wires the middleware and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{DefaultAllowedOrigin}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/books", cfg.Handler.GetBooks)
		api.POST("/books", cfg.Handler.AddBook)
		api.DELETE("/books/:id", cfg.Handler.DeleteBook)
		api.POST("/books/issue", cfg.Handler.IssueBook)
		api.POST("/books/return", cfg.Handler.ReturnBook)
		api.GET("/members", cfg.Handler.GetMembers)
		api.POST("/members", cfg.Handler.AddMember)
		api.DELETE("/members/:id", cfg.Handler.DeleteMember)
		api.GET("/history", cfg.Handler.GetHistory)
	}

	return router
}
