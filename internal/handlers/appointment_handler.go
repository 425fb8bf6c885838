package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

// activeStatuses are the appointment states that hold a slot.
var activeStatuses = bson.A{models.StatusPending, models.StatusApproved}

// GetAppointments handles GET /appointments. The listing is scoped to the
// caller: patients see their own, doctors their own, admins everything.
func (h *Handler) GetAppointments(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	filter := bson.M{}
	switch claims.Role {
	case models.RolePatient:
		patientID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			return
		}
		filter["patientId"] = patientID
	case models.RoleDoctor:
		doctorID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			return
		}
		filter["doctorId"] = doctorID
	}

	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	page := utils.ParsePageParams(c, 10)

	ctx, cancel := dbCtx()
	defer cancel()

	total, err := h.appointments().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Error fetching appointments: %v", err)
		utils.InternalServerError(c)
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := h.appointments().Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("Error fetching appointments: %v", err)
		utils.InternalServerError(c)
		return
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		log.Printf("Error decoding appointments: %v", err)
		utils.InternalServerError(c)
		return
	}

	views, err := h.appointmentViews(ctx, appointments)
	if err != nil {
		log.Printf("Error resolving appointment references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": views,
		"pagination":   page.Meta(total),
	})
}

type createAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason" binding:"max=500"`
}

// CreateAppointment handles POST /appointments. Patient only (route gated).
func (h *Handler) CreateAppointment(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Doctor ID, date, and time are required")
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format")
		return
	}

	if !models.ValidTimeOfDay(req.Time) {
		utils.BadRequest(c, "Invalid time format")
		return
	}

	patientID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired token")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var doctor models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": doctorID}).Decode(&doctor); err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	var patient models.Patient
	if err := h.patients().FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	// Soft uniqueness: a slot is taken while a pending or approved appointment
	// holds it. Read-then-insert, so two concurrent requests can both pass.
	count, err := h.appointments().CountDocuments(ctx, bson.M{
		"doctorId": doctorID,
		"date":     date,
		"time":     req.Time,
		"status":   bson.M{"$in": activeStatuses},
	})
	if err != nil {
		log.Printf("Error checking slot availability: %v", err)
		utils.InternalServerError(c)
		return
	}
	if count > 0 {
		utils.Conflict(c, "This time slot is already booked")
		return
	}

	apt := models.Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      req.Time,
		Reason:    req.Reason,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	if _, err := h.appointments().InsertOne(ctx, apt); err != nil {
		log.Printf("Error creating appointment: %v", err)
		utils.InternalServerError(c)
		return
	}

	h.NotificationSvc.SendAppointmentRequestedSMS(&patient, &apt)

	views, err := h.appointmentViews(ctx, []models.Appointment{apt})
	if err != nil {
		log.Printf("Error resolving appointment references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment request submitted",
		"appointment": views[0],
	})
}

// GetAppointmentByID handles GET /appointments/:id with ownership checks.
func (h *Handler) GetAppointmentByID(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	aptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var apt models.Appointment
	if err := h.appointments().FindOne(ctx, bson.M{"_id": aptID}).Decode(&apt); err != nil {
		utils.NotFound(c, "Appointment not found")
		return
	}

	if claims.Role == models.RolePatient && apt.PatientID.Hex() != claims.UserID {
		utils.Forbidden(c, "Access denied")
		return
	}
	if claims.Role == models.RoleDoctor && apt.DoctorID.Hex() != claims.UserID {
		utils.Forbidden(c, "Access denied")
		return
	}

	views, err := h.appointmentViews(ctx, []models.Appointment{apt})
	if err != nil {
		log.Printf("Error resolving appointment references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": views[0]})
}

type updateAppointmentRequest struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// UpdateAppointment handles PATCH /appointments/:id: a status transition per
// the permission matrix, a doctor reschedule, or both in one request.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	aptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var apt models.Appointment
	if err := h.appointments().FindOne(ctx, bson.M{"_id": aptID}).Decode(&apt); err != nil {
		utils.NotFound(c, "Appointment not found")
		return
	}

	if req.Status != "" {
		target := models.AppointmentStatus(req.Status)

		rule, known := models.TransitionRuleFor(target)
		if !known {
			utils.BadRequest(c, "Invalid status")
			return
		}
		if !rule.RoleAllowed(claims.Role) {
			utils.Forbidden(c, "You are not authorized to set this status")
			return
		}
		if !rule.FromAllowed(apt.Status) {
			utils.BadRequest(c, fmt.Sprintf("Cannot transition from %s to %s", apt.Status, target))
			return
		}

		// Ownership: patients act on their own appointments, doctors on
		// theirs. Admins are exempt.
		if claims.Role == models.RolePatient && apt.PatientID.Hex() != claims.UserID {
			utils.Forbidden(c, "Access denied")
			return
		}
		if claims.Role == models.RoleDoctor && apt.DoctorID.Hex() != claims.UserID {
			utils.Forbidden(c, "Access denied")
			return
		}

		apt.Status = target
	}

	if req.Date != "" || req.Time != "" {
		if claims.Role != models.RoleDoctor {
			utils.Forbidden(c, "Only doctors can reschedule appointments")
			return
		}
		if apt.DoctorID.Hex() != claims.UserID {
			utils.Forbidden(c, "Access denied")
			return
		}

		if req.Date != "" {
			date, err := parseAppointmentDate(req.Date)
			if err != nil {
				utils.BadRequest(c, "Invalid date format")
				return
			}
			apt.Date = date
		}
		if req.Time != "" {
			if !models.ValidTimeOfDay(req.Time) {
				utils.BadRequest(c, "Invalid time format")
				return
			}
			apt.Time = req.Time
		}

		// A reschedule needs fresh patient confirmation.
		apt.Status = models.StatusPending
	}

	update := bson.M{"$set": bson.M{
		"status": apt.Status,
		"date":   apt.Date,
		"time":   apt.Time,
	}}
	if _, err := h.appointments().UpdateOne(ctx, bson.M{"_id": aptID}, update); err != nil {
		log.Printf("Error updating appointment: %v", err)
		utils.InternalServerError(c)
		return
	}

	h.notifyStatusChange(&apt)

	views, err := h.appointmentViews(ctx, []models.Appointment{apt})
	if err != nil {
		log.Printf("Error resolving appointment references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment updated successfully",
		"appointment": views[0],
	})
}

func (h *Handler) notifyStatusChange(apt *models.Appointment) {
	ctx, cancel := dbCtx()
	defer cancel()

	var patient models.Patient
	if err := h.patients().FindOne(ctx, bson.M{"_id": apt.PatientID}).Decode(&patient); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("Error looking up patient for notification: %v", err)
		}
		return
	}
	h.NotificationSvc.SendAppointmentStatusSMS(&patient, apt)
}
