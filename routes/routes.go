package routes

import (
	"github.com/julienschmidt/httprouter"

	"karigar/auth"
	"karigar/jobs"
	"karigar/middleware"
	"karigar/models"
	"karigar/ratelim"
	"karigar/workers"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddJobRoutes(router *httprouter.Router) {
	router.POST("/api/jobs/job", ratelim.RateLimit(middleware.Authenticate(middleware.RequireRole(models.RoleClient, jobs.CreateJob))))
	router.GET("/api/jobs/job/:id", middleware.Authenticate(jobs.GetJob))
	router.POST("/api/jobs/job/:id/accept", ratelim.RateLimit(middleware.Authenticate(middleware.RequireRole(models.RoleWorker, jobs.AcceptJob))))
	router.PATCH("/api/jobs/job/:id/status", ratelim.RateLimit(middleware.Authenticate(jobs.UpdateJobStatus)))
	router.GET("/api/jobs/job/:id/location", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.JobLocation)))
	router.POST("/api/jobs/job/:id/review", ratelim.RateLimit(middleware.Authenticate(middleware.RequireRole(models.RoleClient, jobs.AddReview))))
	router.GET("/api/jobs/my-posts", middleware.Authenticate(middleware.RequireRole(models.RoleClient, jobs.GetMyPosts)))
	router.GET("/api/jobs/my-assignments", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, jobs.GetMyAssignments)))
	router.GET("/api/jobs/nearby", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.NearbyJobs)))
}

func AddWorkerRoutes(router *httprouter.Router) {
	router.PUT("/api/worker/location", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.UpdateLocation)))
	router.GET("/api/worker/location/live", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.LiveLocation)))
	router.PUT("/api/worker/profile", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.UpdateProfile)))
	router.GET("/api/worker/notifications", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.GetNotifications)))
	router.PATCH("/api/worker/notifications/:id", middleware.Authenticate(middleware.RequireRole(models.RoleWorker, workers.MarkNotificationRead)))
}
