package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/chapter-web/app/metrics"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(requestID())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\" %v\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
				param.Keys[requestIDKey],
			)
		},
		SkipPaths: []string{"/health"},
	}))
	r.Use(gin.CustomRecovery(handler.Recover))
	r.Use(instrument(m))

	setupRoutes(r, handler, m)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, m *metrics.Metrics) {
	r.GET("/", handler.GetHome)
	r.GET("/sitemap.xml", handler.GetSitemap)

	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	{
		api.GET("/posts", handler.APIListPosts)
		// Preflight requests only reach the CORS middleware through a route.
		api.OPTIONS("/posts", func(c *gin.Context) {})
	}

	preferences := r.Group("/preferences")
	{
		preferences.POST("/theme", handler.SetTheme)
		preferences.POST("/view-mode", handler.SetViewMode)
	}

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})

	r.GET("/:section", handler.GetSection)
	r.GET("/:section/:slug", handler.GetPost)

	r.NoRoute(handler.NotFound)
}
