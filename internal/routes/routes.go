package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hospital-app-server/internal/config"
	"hospital-app-server/internal/handlers"
	"hospital-app-server/internal/middleware"
	"hospital-app-server/internal/models"
	"hospital-app-server/internal/repository"
	"hospital-app-server/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	// Repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	clinicalRepo := repository.NewClinicalRepository(db)
	labRepo := repository.NewLabRepository(db)

	// Services
	guard := service.NewOwnershipGuard(appointmentRepo, doctorRepo)
	appointmentSvc := service.NewAppointmentService(guard, appointmentRepo, doctorRepo, patientRepo, clinicalRepo, labRepo, log)
	clinicalSvc := service.NewClinicalService(guard, clinicalRepo, labRepo, log)
	dashboardSvc := service.NewDashboardService(appointmentRepo, doctorRepo, clinicalRepo, log)
	historySvc := service.NewHistoryService(appointmentRepo, doctorRepo, patientRepo, clinicalRepo, labRepo, log)
	labSvc := service.NewLabService(labRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentSvc, log)
	checkupHandler := handlers.NewCheckupHandler(appointmentSvc, clinicalSvc, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, historySvc, log)
	labHandler := handlers.NewLabHandler(labSvc, log)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// User administration
		userRoutes := private.Group("/users")
		{
			// Doctor directory is visible to all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.DELETE("/:id", userHandler.DeactivateUser)
			}
		}

		// Appointment lifecycle and encounter documentation. The id-bound
		// doctor routes live under one wildcard so the router tree stays
		// conflict-free; list views get their own role-scoped prefixes.
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)
			appointmentRoutes.PATCH("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CancelAppointment)

			doctorRoutes := appointmentRoutes.Group("")
			doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				doctorRoutes.GET("/:id", appointmentHandler.GetAppointmentDetails)
				doctorRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)

				doctorRoutes.GET("/:id/checkup", checkupHandler.GetCheckup)
				doctorRoutes.POST("/:id/vitals", checkupHandler.UpdateVitals)
				doctorRoutes.POST("/:id/prescriptions", checkupHandler.CreatePrescription)
				doctorRoutes.POST("/:id/lab-tests", checkupHandler.RequestLabTest)
			}
		}

		// Patient self-service views
		patientRoutes := private.Group("/patient")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/appointments", appointmentHandler.GetMyAppointments)
		}

		// Doctor read views
		doctorViews := private.Group("/doctor")
		doctorViews.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorViews.GET("/dashboard", dashboardHandler.GetDoctorDashboard)
			doctorViews.GET("/appointments/today", appointmentHandler.GetTodaysAppointments)
			doctorViews.GET("/patients/:patientId/history", dashboardHandler.GetPatientMedicalHistory)
		}

		// Lab worklist
		labRoutes := private.Group("/lab")
		labRoutes.Use(middleware.RoleAuthMiddleware(models.RoleLab))
		{
			labRoutes.GET("/worklist", labHandler.GetWorklist)
			labRoutes.PATCH("/tests/:id/collect", labHandler.CollectSample)
			labRoutes.PATCH("/tests/:id/report", labHandler.FileReport)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
