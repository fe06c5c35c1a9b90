package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"velora.id/homeserve/internal/cache"
	"velora.id/homeserve/internal/config"
	"velora.id/homeserve/internal/handler"
	"velora.id/homeserve/internal/jobs"
	"velora.id/homeserve/internal/middleware"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/mailer"
)

type Server struct {
	engine    *gin.Engine
	cfg       *config.Config
	scheduler *jobs.Scheduler
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail mailer.Mailer) *Server {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	readCache := cache.New(redisClient)

	resolver := service.NewRoleResolver(userRepo)
	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	catalogService := service.NewCatalogService(categoryRepo, serviceRepo)
	requestService := service.NewRequestService(requestRepo, serviceRepo, userRepo)
	visibilityService := service.NewVisibilityService(resolver, requestRepo, serviceRepo, readCache, cfg.SearchCacheTTL)
	summaryService := service.NewSummaryService(userRepo, requestRepo, serviceRepo, categoryRepo, readCache, cfg.SummaryCacheTTL)
	feedbackService := service.NewFeedbackService(feedbackRepo, serviceRepo)

	scheduler := jobs.NewScheduler()
	scheduler.Register(jobs.NewDailyReminderJob(userRepo, requestRepo, mail, cfg.DailyReminderSpec))
	scheduler.Register(jobs.NewMonthlyReportJob(userRepo, requestRepo, mail, cfg.MonthlyReportSpec))

	authMiddleware := middleware.NewAuthMiddleware(resolver, cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(userService)
	adminHandler := handler.NewAdminHandler(userService, scheduler)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	requestHandler := handler.NewRequestHandler(requestService, visibilityService, authMiddleware)
	searchHandler := handler.NewSearchHandler(visibilityService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	engine := gin.Default()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	engine.POST("/register", authHandler.Register)
	engine.POST("/user-login", authHandler.Login)
	engine.GET("/service_types", catalogHandler.ServiceTypes)
	engine.GET("/feedbacks", feedbackHandler.List)

	api := engine.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	api.Use(middleware.TrackDailyVisit(visitRepo))
	{
		api.GET("/services", catalogHandler.ListServices)
		api.POST("/services", catalogHandler.CreateService)
		api.PUT("/services/:id", catalogHandler.UpdateService)
		api.DELETE("/services/:id", catalogHandler.DeleteService)
		api.POST("/services/:id/feedback", feedbackHandler.Submit)

		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/categories/:id/services", catalogHandler.ListServicesByCategory)

		api.GET("/service_requests", requestHandler.List)
		api.POST("/service_requests", requestHandler.Create)
		api.PATCH("/service_requests/:id", requestHandler.Update)
		api.DELETE("/service_requests/:id", requestHandler.Delete)

		api.POST("/search_services", searchHandler.Search)

		api.GET("/professional/summary", summaryHandler.ProfessionalSummary)
		api.GET("/customer/summary", summaryHandler.CustomerSummary)

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/summary", summaryHandler.AdminSummary)

			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.POST("/activate-professional/:id", adminHandler.ActivateProfessional)
			admin.GET("/professionals", adminHandler.ListProfessionals)
			admin.DELETE("/professionals/:id", adminHandler.DeleteProfessional)

			admin.GET("/jobs", adminHandler.ListJobs)
			admin.POST("/jobs/:name/run", adminHandler.RunJob)
		}
	}

	return &Server{
		engine:    engine,
		cfg:       cfg,
		scheduler: scheduler,
	}
}

// Run starts the periodic jobs and the HTTP listener. Blocks until the
// listener exits.
func (s *Server) Run() error {
	s.scheduler.Start()
	defer s.scheduler.Stop()

	return s.engine.Run(":" + s.cfg.Port)
}
