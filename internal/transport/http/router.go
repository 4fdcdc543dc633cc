package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"
	"lmsplatform/internal/platform/tracing"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

//go:embed templates/*.html
var templatesFS embed.FS

type RouterDeps struct {
	Auth       middleware.Authenticator
	Limiter    *middleware.RateLimiter
	Log        *logger.Logger
	Origins    string
	HealthPing func(ctx context.Context) error

	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	CourseHandler     *CourseHandler
	ChapterHandler    *ChapterHandler
	CatalogHandler    *CatalogHandler
	EnrollmentHandler *EnrollmentHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()

	zapLogger := d.Log.Desugar()
	r.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(zapLogger, true))
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(middleware.Metrics())

	config := cors.DefaultConfig()
	config.AllowOrigins = splitOrigins(d.Origins)
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/health", func(c *gin.Context) {
		if d.HealthPing != nil {
			if err := d.HealthPing(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/dashboard/search", middleware.OptionalAuth(d.Auth), d.CatalogHandler.SearchPage)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			login := []gin.HandlerFunc{d.AuthHandler.Login}
			if d.Limiter != nil {
				login = append([]gin.HandlerFunc{d.Limiter.Limit("login", 5, time.Minute)}, login...)
			}
			auth.POST("/login", login...)
			auth.POST("/refresh", d.AuthHandler.Refresh)
			auth.POST("/logout", d.AuthHandler.Logout)
		}

		private := api.Group("")
		private.Use(middleware.RequireAuth(d.Auth))
		{
			private.GET("/search", d.CatalogHandler.Search)

			users := private.Group("/users")
			{
				users.GET("/me", d.UserHandler.Me)
				users.PATCH("/me", d.UserHandler.UpdateProfile)
				users.PATCH("/:userId/role", d.UserHandler.SetRole)
			}

			courses := private.Group("/courses")
			{
				courses.POST("", d.CourseHandler.Create)
				courses.GET("/:courseId", d.CourseHandler.Get)
				courses.PATCH("/:courseId", d.CourseHandler.Update)
				courses.DELETE("/:courseId", d.CourseHandler.Delete)
				courses.PATCH("/:courseId/publish", d.CourseHandler.TogglePublish)
				courses.POST("/:courseId/checkout", d.EnrollmentHandler.Checkout)

				courses.POST("/:courseId/chapters", d.ChapterHandler.Create)
				courses.PATCH("/:courseId/chapters/:chapterId", d.ChapterHandler.Update)
				courses.PATCH("/:courseId/chapters/:chapterId/publish", d.ChapterHandler.TogglePublish)
				courses.PUT("/:courseId/chapters/:chapterId/progress", d.EnrollmentHandler.SetProgress)
			}
		}
	}

	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:3000"}
	}
	return out
}
