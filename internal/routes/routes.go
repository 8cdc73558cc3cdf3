package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/config"
	"medibook-server/internal/handlers"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	userHandler := handlers.NewUserHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		// Doctor discovery is readable without a session
		public.GET("/doctors", doctorHandler.GetDoctors)
		public.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg)) // Verify the identity provider's session token
	{
		// Identity sync and role routing
		userRoutes := private.Group("/users")
		{
			userRoutes.POST("/sync", userHandler.SyncUser)
			userRoutes.GET("/role/:externalId", userHandler.GetRole)
			userRoutes.PATCH("/role", userHandler.SetRole)

			// Admin-only listing
			userRoutes.GET("", middleware.RoleAuthMiddleware(db, models.RoleAdmin), userHandler.GetUsers)
		}

		// Doctor self-service profile
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("/me", doctorHandler.GetOwnDoctor)
			doctorRoutes.POST("", doctorHandler.CreateDoctor)
			doctorRoutes.PATCH("/me", doctorHandler.UpdateOwnDoctor)
		}

		// Patient profile
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("/me", patientHandler.GetOwnPatient)
			patientRoutes.PATCH("/me", patientHandler.UpdateOwnPatient)
		}

		// Appointment booking, lifecycle, and note thread
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/mine", appointmentHandler.GetAppointmentsForPatient)
			appointmentRoutes.GET("/doctor", appointmentHandler.GetAppointmentsForDoctor)

			// Status transitions; authorization inside the handlers
			appointmentRoutes.PATCH("/:id/status/confirm", appointmentHandler.ConfirmAppointment)
			appointmentRoutes.PATCH("/:id/status/cancel/doctor", appointmentHandler.CancelAppointmentByDoctor)
			appointmentRoutes.PATCH("/:id/status/cancel/patient", appointmentHandler.CancelAppointmentByPatient)

			// Note thread
			appointmentRoutes.PATCH("/:id/notes", appointmentHandler.AddNote)
			appointmentRoutes.PATCH("/:id/notes/:noteId", appointmentHandler.UpdateNote)
			appointmentRoutes.DELETE("/:id/notes/:noteId", appointmentHandler.DeleteNote)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
