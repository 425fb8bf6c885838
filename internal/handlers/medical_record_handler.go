package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

// medicalRecordView is a record with its references resolved.
type medicalRecordView struct {
	models.MedicalRecord
	Patient *patientBrief `json:"patient,omitempty"`
	Doctor  *doctorBrief  `json:"doctor,omitempty"`
}

func (h *Handler) medicalRecordViews(ctx context.Context, records []models.MedicalRecord) ([]medicalRecordView, error) {
	patientIDs := make([]primitive.ObjectID, 0, len(records))
	doctorIDs := make([]primitive.ObjectID, 0, len(records))
	for _, r := range records {
		patientIDs = append(patientIDs, r.PatientID)
		doctorIDs = append(doctorIDs, r.DoctorID)
	}

	patients, err := h.patientBriefs(ctx, patientIDs)
	if err != nil {
		return nil, err
	}
	doctors, err := h.doctorBriefs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]medicalRecordView, 0, len(records))
	for _, r := range records {
		view := medicalRecordView{MedicalRecord: r}
		if p, ok := patients[r.PatientID]; ok {
			brief := p
			view.Patient = &brief
		}
		if d, ok := doctors[r.DoctorID]; ok {
			brief := d
			view.Doctor = &brief
		}
		views = append(views, view)
	}
	return views, nil
}

// GetMedicalRecords handles GET /medical-records. Patients see their own
// records, doctors what they authored, admins everything; all further
// filterable by patientId where the role permits.
func (h *Handler) GetMedicalRecords(c *gin.Context) {
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

	if claims.Role != models.RolePatient {
		if patientIDStr := c.Query("patientId"); patientIDStr != "" {
			patientID, err := primitive.ObjectIDFromHex(patientIDStr)
			if err != nil {
				utils.BadRequest(c, "Invalid patient ID")
				return
			}
			filter["patientId"] = patientID
		}
	}

	page := utils.ParsePageParams(c, 10)

	ctx, cancel := dbCtx()
	defer cancel()

	total, err := h.medicalRecords().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Error fetching medical records: %v", err)
		utils.InternalServerError(c)
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := h.medicalRecords().Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("Error fetching medical records: %v", err)
		utils.InternalServerError(c)
		return
	}
	defer cursor.Close(ctx)

	var records []models.MedicalRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Printf("Error decoding medical records: %v", err)
		utils.InternalServerError(c)
		return
	}

	views, err := h.medicalRecordViews(ctx, records)
	if err != nil {
		log.Printf("Error resolving medical record references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":    views,
		"pagination": page.Meta(total),
	})
}

type createMedicalRecordRequest struct {
	PatientID     string `json:"patientId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Prescription  string `json:"prescription"`
	Notes         string `json:"notes"`
}

// CreateMedicalRecord handles POST /medical-records. Doctor only (route
// gated); the authenticated doctor becomes the record's author.
func (h *Handler) CreateMedicalRecord(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	var req createMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Patient ID and diagnosis are required")
		return
	}

	patientID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return
	}
	doctorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired token")
		return
	}

	record := models.MedicalRecord{
		ID:           primitive.NewObjectID(),
		PatientID:    patientID,
		DoctorID:     doctorID,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}

	if req.AppointmentID != "" {
		appointmentID, err := primitive.ObjectIDFromHex(req.AppointmentID)
		if err != nil {
			utils.BadRequest(c, "Invalid appointment ID")
			return
		}
		record.AppointmentID = appointmentID
	}

	ctx, cancel := dbCtx()
	defer cancel()

	count, err := h.patients().CountDocuments(ctx, bson.M{"_id": patientID})
	if err != nil {
		log.Printf("Error creating medical record: %v", err)
		utils.InternalServerError(c)
		return
	}
	if count == 0 {
		utils.NotFound(c, "Patient not found")
		return
	}

	if _, err := h.medicalRecords().InsertOne(ctx, record); err != nil {
		log.Printf("Error creating medical record: %v", err)
		utils.InternalServerError(c)
		return
	}

	views, err := h.medicalRecordViews(ctx, []models.MedicalRecord{record})
	if err != nil {
		log.Printf("Error resolving medical record references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Medical record created",
		"record":  views[0],
	})
}

// GetMedicalRecordByID handles GET /medical-records/:id with ownership checks.
func (h *Handler) GetMedicalRecordByID(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid medical record ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var record models.MedicalRecord
	if err := h.medicalRecords().FindOne(ctx, bson.M{"_id": recordID}).Decode(&record); err != nil {
		utils.NotFound(c, "Medical record not found")
		return
	}

	if claims.Role == models.RolePatient && record.PatientID.Hex() != claims.UserID {
		utils.Forbidden(c, "Access denied")
		return
	}
	if claims.Role == models.RoleDoctor && record.DoctorID.Hex() != claims.UserID {
		utils.Forbidden(c, "Access denied")
		return
	}

	views, err := h.medicalRecordViews(ctx, []models.MedicalRecord{record})
	if err != nil {
		log.Printf("Error resolving medical record references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": views[0]})
}

type updateMedicalRecordRequest struct {
	Diagnosis    string  `json:"diagnosis"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}

// UpdateMedicalRecord handles PUT /medical-records/:id. Records are
// immutable except by the authoring doctor.
func (h *Handler) UpdateMedicalRecord(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid medical record ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var record models.MedicalRecord
	if err := h.medicalRecords().FindOne(ctx, bson.M{"_id": recordID}).Decode(&record); err != nil {
		utils.NotFound(c, "Medical record not found")
		return
	}

	if record.DoctorID.Hex() != claims.UserID {
		utils.Forbidden(c, "Access denied. You can only update your own records.")
		return
	}

	var req updateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updateFields := bson.M{}
	if req.Diagnosis != "" {
		updateFields["diagnosis"] = req.Diagnosis
	}
	if req.Prescription != nil {
		updateFields["prescription"] = *req.Prescription
	}
	if req.Notes != nil {
		updateFields["notes"] = *req.Notes
	}

	if len(updateFields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.MedicalRecord
	err = h.medicalRecords().FindOneAndUpdate(ctx, bson.M{"_id": recordID}, bson.M{"$set": updateFields}, opts).Decode(&updated)
	if err != nil {
		log.Printf("Error updating medical record: %v", err)
		utils.InternalServerError(c)
		return
	}

	views, err := h.medicalRecordViews(ctx, []models.MedicalRecord{updated})
	if err != nil {
		log.Printf("Error resolving medical record references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Medical record updated successfully",
		"record":  views[0],
	})
}
