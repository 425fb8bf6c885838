package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

type registerPatientRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Gender   string `json:"gender" binding:"required,oneof=male female other"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userSummary is the identity payload returned next to a token.
type userSummary struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Role           models.Role        `json:"role"`
	Specialization string             `json:"specialization,omitempty"`
}

// RegisterPatient handles POST /auth/patient/register.
func (h *Handler) RegisterPatient(c *gin.Context) {
	var req registerPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "All fields are required: name, email, phone, gender, password")
		return
	}

	if len(req.Password) < 6 {
		utils.BadRequest(c, "Password must be at least 6 characters long")
		return
	}

	email := strings.ToLower(req.Email)

	ctx, cancel := dbCtx()
	defer cancel()

	count, err := h.patients().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Printf("Registration error: %v", err)
		utils.InternalServerError(c)
		return
	}
	if count > 0 {
		utils.Conflict(c, "Email already registered")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Registration error: %v", err)
		utils.InternalServerError(c)
		return
	}

	patient := models.Patient{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		Gender:       req.Gender,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if _, err := h.patients().InsertOne(ctx, patient); err != nil {
		// Unique email index closes the check-then-insert window above.
		if mongo.IsDuplicateKeyError(err) {
			utils.Conflict(c, "Email already registered")
			return
		}
		log.Printf("Registration error: %v", err)
		utils.InternalServerError(c)
		return
	}

	token, err := utils.GenerateToken(patient.ID.Hex(), patient.Email, models.RolePatient, patient.Name, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		log.Printf("Registration error: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": userSummary{
			ID:    patient.ID,
			Name:  patient.Name,
			Email: patient.Email,
			Role:  models.RolePatient,
		},
	})
}

// LoginPatient handles POST /auth/patient/login.
func (h *Handler) LoginPatient(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var patient models.Patient
	err := h.patients().FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&patient)
	if err != nil || !utils.CheckPasswordHash(req.Password, patient.PasswordHash) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	h.loginResponse(c, userSummary{
		ID:    patient.ID,
		Name:  patient.Name,
		Email: patient.Email,
		Role:  models.RolePatient,
	})
}

// LoginDoctor handles POST /auth/doctor/login.
func (h *Handler) LoginDoctor(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var doctor models.Doctor
	err := h.doctors().FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&doctor)
	if err != nil || !utils.CheckPasswordHash(req.Password, doctor.PasswordHash) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	h.loginResponse(c, userSummary{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Email:          doctor.Email,
		Role:           models.RoleDoctor,
		Specialization: doctor.Specialization,
	})
}

// LoginAdmin handles POST /auth/admin/login.
func (h *Handler) LoginAdmin(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var admin models.Admin
	err := h.admins().FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&admin)
	if err != nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	h.loginResponse(c, userSummary{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Role:  models.RoleAdmin,
	})
}

func bindLogin(c *gin.Context) (loginRequest, bool) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return req, false
	}
	return req, true
}

func (h *Handler) loginResponse(c *gin.Context, user userSummary) {
	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role, user.Name, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		log.Printf("Login error: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
