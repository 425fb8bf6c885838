package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mediconnect-server/internal/config"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/services"
)

// Handler carries the shared dependencies for all HTTP handlers.
type Handler struct {
	DB              *mongo.Database
	Cfg             *config.Config
	NotificationSvc *services.NotificationService
}

func NewHandler(db *mongo.Database, cfg *config.Config, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		DB:              db,
		Cfg:             cfg,
		NotificationSvc: notificationSvc,
	}
}

func (h *Handler) patients() *mongo.Collection {
	return h.DB.Collection(models.CollPatients)
}

func (h *Handler) doctors() *mongo.Collection {
	return h.DB.Collection(models.CollDoctors)
}

func (h *Handler) admins() *mongo.Collection {
	return h.DB.Collection(models.CollAdmins)
}

func (h *Handler) appointments() *mongo.Collection {
	return h.DB.Collection(models.CollAppointments)
}

func (h *Handler) medicalRecords() *mongo.Collection {
	return h.DB.Collection(models.CollMedicalRecords)
}

// dbCtx returns a bounded context for a single database operation.
func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
