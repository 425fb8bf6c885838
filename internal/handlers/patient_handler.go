package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

// GetPatients handles GET /patients. Doctor/admin only (route gated).
func (h *Handler) GetPatients(c *gin.Context) {
	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": primitive.Regex{Pattern: search, Options: "i"}},
			bson.M{"email": primitive.Regex{Pattern: search, Options: "i"}},
		}
	}

	page := utils.ParsePageParams(c, 10)

	ctx, cancel := dbCtx()
	defer cancel()

	total, err := h.patients().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Error fetching patients: %v", err)
		utils.InternalServerError(c)
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := h.patients().Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("Error fetching patients: %v", err)
		utils.InternalServerError(c)
		return
	}
	defer cursor.Close(ctx)

	patients := make([]models.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		log.Printf("Error decoding patients: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patients":   patients,
		"pagination": page.Meta(total),
	})
}

// GetPatientByID handles GET /patients/:id. Patients see only themselves.
func (h *Handler) GetPatientByID(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	if claims.Role == models.RolePatient && claims.UserID != c.Param("id") {
		utils.Forbidden(c, "Access denied")
		return
	}

	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var patient models.Patient
	if err := h.patients().FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

type updatePatientRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
}

// UpdatePatient handles PUT /patients/:id. Patients update only themselves;
// admins may update anyone.
func (h *Handler) UpdatePatient(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	if claims.Role == models.RolePatient && claims.UserID != c.Param("id") {
		utils.Forbidden(c, "Access denied")
		return
	}

	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return
	}

	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updateFields := bson.M{}
	if req.Name != "" {
		updateFields["name"] = req.Name
	}
	if req.Phone != "" {
		updateFields["phone"] = req.Phone
	}
	if req.Gender != "" {
		if req.Gender != "male" && req.Gender != "female" && req.Gender != "other" {
			utils.BadRequest(c, "Invalid gender")
			return
		}
		updateFields["gender"] = req.Gender
	}

	if len(updateFields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var patient models.Patient
	err = h.patients().FindOneAndUpdate(ctx, bson.M{"_id": patientID}, bson.M{"$set": updateFields}, opts).Decode(&patient)
	if err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"patient": patient,
	})
}

// DeletePatient handles DELETE /patients/:id. Admin only (route gated).
// Dependent documents go first so a partial failure never leaves orphaned
// appointments or records pointing at a missing patient.
func (h *Handler) DeletePatient(c *gin.Context) {
	patientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid patient ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	count, err := h.patients().CountDocuments(ctx, bson.M{"_id": patientID})
	if err != nil {
		log.Printf("Error deleting patient: %v", err)
		utils.InternalServerError(c)
		return
	}
	if count == 0 {
		utils.NotFound(c, "Patient not found")
		return
	}

	if _, err := h.appointments().DeleteMany(ctx, bson.M{"patientId": patientID}); err != nil {
		log.Printf("Error deleting patient appointments: %v", err)
		utils.InternalServerError(c)
		return
	}
	if _, err := h.medicalRecords().DeleteMany(ctx, bson.M{"patientId": patientID}); err != nil {
		log.Printf("Error deleting patient medical records: %v", err)
		utils.InternalServerError(c)
		return
	}
	if _, err := h.patients().DeleteOne(ctx, bson.M{"_id": patientID}); err != nil {
		log.Printf("Error deleting patient: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient and related records deleted successfully"})
}
