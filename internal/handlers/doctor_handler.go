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

// GetDoctors handles GET /doctors: a public, paginated directory searchable
// by name or specialization.
func (h *Handler) GetDoctors(c *gin.Context) {
	filter := bson.M{}

	if specialization := c.Query("specialization"); specialization != "" {
		filter["specialization"] = primitive.Regex{Pattern: specialization, Options: "i"}
	}
	if search := c.Query("search"); search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": primitive.Regex{Pattern: search, Options: "i"}},
			bson.M{"specialization": primitive.Regex{Pattern: search, Options: "i"}},
		}
	}

	page := utils.ParsePageParams(c, 10)

	ctx, cancel := dbCtx()
	defer cancel()

	total, err := h.doctors().CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Error fetching doctors: %v", err)
		utils.InternalServerError(c)
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := h.doctors().Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("Error fetching doctors: %v", err)
		utils.InternalServerError(c)
		return
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		log.Printf("Error decoding doctors: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctors":    doctors,
		"pagination": page.Meta(total),
	})
}

// GetDoctorByID handles GET /doctors/:id (public).
func (h *Handler) GetDoctorByID(c *gin.Context) {
	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var doctor models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": doctorID}).Decode(&doctor); err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

type updateDoctorRequest struct {
	Name           string                    `json:"name"`
	Phone          string                    `json:"phone"`
	Specialization string                    `json:"specialization"`
	Availability   []models.AvailabilitySlot `json:"availability"`
}

// UpdateDoctor handles PUT /doctors/:id. Doctors update only themselves.
func (h *Handler) UpdateDoctor(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	if claims.UserID != c.Param("id") {
		utils.Forbidden(c, "Access denied. You can only update your own profile.")
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var req updateDoctorRequest
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
	if req.Specialization != "" {
		updateFields["specialization"] = req.Specialization
	}
	if req.Availability != nil {
		if err := models.ValidateAvailability(req.Availability); err != nil {
			utils.BadRequest(c, "Invalid availability format")
			return
		}
		updateFields["availability"] = req.Availability
	}

	if len(updateFields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doctor models.Doctor
	err = h.doctors().FindOneAndUpdate(ctx, bson.M{"_id": doctorID}, bson.M{"$set": updateFields}, opts).Decode(&doctor)
	if err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"doctor":  doctor,
	})
}

// GetDoctorAvailability handles GET /doctors/:id/availability (public).
func (h *Handler) GetDoctorAvailability(c *gin.Context) {
	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var doctor models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": doctorID}).Decode(&doctor); err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	availability := doctor.Availability
	if availability == nil {
		availability = make([]models.AvailabilitySlot, 0)
	}

	c.JSON(http.StatusOK, gin.H{
		"doctorId":     doctor.ID,
		"doctorName":   doctor.Name,
		"availability": availability,
	})
}

type updateAvailabilityRequest struct {
	Availability []models.AvailabilitySlot `json:"availability"`
}

// UpdateDoctorAvailability handles PUT /doctors/:id/availability. Doctor
// self-service: the weekly slot list is replaced wholesale after validation.
func (h *Handler) UpdateDoctorAvailability(c *gin.Context) {
	claims, _ := middleware.CurrentUser(c)

	if claims.UserID != c.Param("id") {
		utils.Forbidden(c, "Access denied. You can only update your own availability.")
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID")
		return
	}

	var req updateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if req.Availability == nil {
		utils.BadRequest(c, "Availability must be an array")
		return
	}
	if err := models.ValidateAvailability(req.Availability); err != nil {
		utils.BadRequest(c, "Invalid availability format")
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doctor models.Doctor
	err = h.doctors().FindOneAndUpdate(ctx, bson.M{"_id": doctorID}, bson.M{"$set": bson.M{"availability": req.Availability}}, opts).Decode(&doctor)
	if err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated successfully",
		"availability": doctor.Availability,
	})
}
