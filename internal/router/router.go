package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/handlers"
	"github.com/jobboard-dev/jobboard/internal/middleware"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/services"
)

type Deps struct {
	Identity       *services.IdentityService
	Jobs           *services.JobService
	Applications   *services.ApplicationService
	Pinger         repositories.Pinger
	AllowedOrigins []string
	// AuthLimiter throttles register and login per client IP; nil disables it.
	AuthLimiter *middleware.ClientLimiter
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.Identity)
	jobHandler := handlers.NewJobHandler(deps.Jobs)
	applicationHandler := handlers.NewApplicationHandler(deps.Applications)

	authenticated := middleware.AuthMiddleware(deps.Identity)
	guarded := func(c access.Capability) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticated, middleware.RequireCapability(c)}
	}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ready", handlers.Readiness(deps.Pinger))

		auth := api.Group("/auth")
		{
			limited := middleware.RateLimit(deps.AuthLimiter)
			auth.POST("/register", limited, authHandler.Register)
			auth.POST("/login", limited, authHandler.Login)
			auth.GET("/me", authenticated, authHandler.Me)
			auth.PUT("/profile", authenticated, authHandler.UpdateProfile)
			auth.GET("/profile/:id", authHandler.GetProfile)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/myjobs", append(guarded(access.ManageOwnJobs), jobHandler.ListMyJobs)...)
			jobs.POST("", append(guarded(access.CreateJob), jobHandler.CreateJob)...)
			jobs.PUT("/:id", append(guarded(access.ManageOwnJobs), jobHandler.UpdateJob)...)
			jobs.DELETE("/:id", append(guarded(access.ManageOwnJobs), jobHandler.DeleteJob)...)
			jobs.GET("/:id", jobHandler.GetJob)
		}

		applications := api.Group("/applications", authenticated)
		{
			applications.POST("", middleware.RequireCapability(access.ApplyToJob), applicationHandler.Apply)
			applications.GET("/my-applications", middleware.RequireCapability(access.ViewOwnApplications), applicationHandler.ListMyApplications)
			applications.GET("/job/:jobId", middleware.RequireCapability(access.ReviewJobApplications), applicationHandler.ListJobApplications)
			applications.PATCH("/:id", middleware.RequireCapability(access.ReviewJobApplications), applicationHandler.UpdateStatus)
		}
	}

	return r
}
