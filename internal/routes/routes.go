package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"mediconnect-server/internal/config"
	"mediconnect-server/internal/handlers"
	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/services"
)

// Setup wires all application routes onto the router.
func Setup(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	notificationSvc := services.NewNotificationService(cfg.TextbeltKey)
	h := handlers.NewHandler(db, cfg, notificationSvc)

	// Public routes
	auth := router.Group("/auth")
	{
		auth.POST("/patient/register", h.RegisterPatient)
		auth.POST("/patient/login", h.LoginPatient)
		auth.POST("/doctor/login", h.LoginDoctor)
		auth.POST("/admin/login", h.LoginAdmin)
	}

	// Doctor directory is browsable without an account.
	router.GET("/doctors", h.GetDoctors)
	router.GET("/doctors/:id", h.GetDoctorByID)
	router.GET("/doctors/:id/availability", h.GetDoctorAvailability)

	// Authenticated routes
	private := router.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		doctorSelf := private.Group("/doctors")
		doctorSelf.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorSelf.PUT("/:id", h.UpdateDoctor)
			doctorSelf.PUT("/:id/availability", h.UpdateDoctorAvailability)
		}

		appointments := private.Group("/appointments")
		{
			appointments.GET("", h.GetAppointments)
			appointments.POST("", middleware.RoleAuthMiddleware(models.RolePatient), h.CreateAppointment)
			appointments.GET("/:id", h.GetAppointmentByID)
			appointments.PATCH("/:id", h.UpdateAppointment)
		}

		patients := private.Group("/patients")
		{
			patients.GET("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), h.GetPatients)
			patients.GET("/:id", h.GetPatientByID)
			patients.PUT("/:id", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), h.UpdatePatient)
			patients.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), h.DeletePatient)
		}

		records := private.Group("/medical-records")
		{
			records.GET("", h.GetMedicalRecords)
			records.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), h.CreateMedicalRecord)
			records.GET("/:id", h.GetMedicalRecordByID)
			records.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), h.UpdateMedicalRecord)
		}

		admin := private.Group("/admin")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.GET("/stats", h.GetAdminStats)
			admin.GET("/users", h.GetAdminUsers)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
