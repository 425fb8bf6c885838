package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

// GetAdminStats handles GET /admin/stats: aggregate counts plus the most
// recent appointments.
func (h *Handler) GetAdminStats(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	counts := map[string]int64{}
	countQueries := []struct {
		key   string
		count func(context.Context) (int64, error)
	}{
		{"totalPatients", func(ctx context.Context) (int64, error) {
			return h.patients().CountDocuments(ctx, bson.M{})
		}},
		{"totalDoctors", func(ctx context.Context) (int64, error) {
			return h.doctors().CountDocuments(ctx, bson.M{})
		}},
		{"totalAppointments", func(ctx context.Context) (int64, error) {
			return h.appointments().CountDocuments(ctx, bson.M{})
		}},
		{"pendingAppointments", func(ctx context.Context) (int64, error) {
			return h.appointments().CountDocuments(ctx, bson.M{"status": models.StatusPending})
		}},
		{"approvedAppointments", func(ctx context.Context) (int64, error) {
			return h.appointments().CountDocuments(ctx, bson.M{"status": models.StatusApproved})
		}},
		{"completedAppointments", func(ctx context.Context) (int64, error) {
			return h.appointments().CountDocuments(ctx, bson.M{"status": models.StatusCompleted})
		}},
		{"cancelledAppointments", func(ctx context.Context) (int64, error) {
			return h.appointments().CountDocuments(ctx, bson.M{"status": models.StatusCancelled})
		}},
	}

	for _, q := range countQueries {
		n, err := q.count(ctx)
		if err != nil {
			log.Printf("Error fetching admin stats: %v", err)
			utils.InternalServerError(c)
			return
		}
		counts[q.key] = n
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := h.appointments().CountDocuments(ctx, bson.M{
		"date": bson.M{"$gte": dayStart, "$lt": dayStart.Add(24 * time.Hour)},
	})
	if err != nil {
		log.Printf("Error fetching admin stats: %v", err)
		utils.InternalServerError(c)
		return
	}
	counts["todayAppointments"] = todayCount

	recentOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(10)
	cursor, err := h.appointments().Find(ctx, bson.M{}, recentOpts)
	if err != nil {
		log.Printf("Error fetching admin stats: %v", err)
		utils.InternalServerError(c)
		return
	}
	defer cursor.Close(ctx)

	var recent []models.Appointment
	if err := cursor.All(ctx, &recent); err != nil {
		log.Printf("Error decoding recent appointments: %v", err)
		utils.InternalServerError(c)
		return
	}

	recentViews, err := h.appointmentViews(ctx, recent)
	if err != nil {
		log.Printf("Error resolving appointment references: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          counts,
		"recentActivity": recentViews,
	})
}

// adminUser is the role-tagged shape of a user row in the admin listing.
type adminUser struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Role           models.Role        `json:"role"`
	Phone          string             `json:"phone,omitempty"`
	Gender         string             `json:"gender,omitempty"`
	Specialization string             `json:"specialization,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// GetAdminUsers handles GET /admin/users: lists one user collection when
// ?type= is given, otherwise a merged listing across all three.
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page := utils.ParsePageParams(c, 20)
	search := c.Query("search")

	searchFilter := bson.M{}
	if search != "" {
		searchFilter["$or"] = bson.A{
			bson.M{"name": primitive.Regex{Pattern: search, Options: "i"}},
			bson.M{"email": primitive.Regex{Pattern: search, Options: "i"}},
		}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	userType := c.Query("type")
	switch userType {
	case "patient", "doctor", "admin":
		users, total, err := h.listUserCollection(ctx, models.Role(userType), searchFilter, page)
		if err != nil {
			log.Printf("Error fetching users: %v", err)
			utils.InternalServerError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "pagination": page.Meta(total)})
		return
	}

	// Merged listing: capped per collection, sorted by creation date.
	merged := make([]adminUser, 0)
	for _, part := range []struct {
		role models.Role
		cap  int64
	}{
		{models.RolePatient, 50},
		{models.RoleDoctor, 50},
		{models.RoleAdmin, 10},
	} {
		users, _, err := h.listUserCollection(ctx, part.role, searchFilter, utils.PageParams{Page: 1, Limit: int(part.cap)})
		if err != nil {
			log.Printf("Error fetching users: %v", err)
			utils.InternalServerError(c)
			return
		}
		merged = append(merged, users...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	total := int64(len(merged))
	start := int(page.Skip())
	if start > len(merged) {
		start = len(merged)
	}
	end := start + page.Limit
	if end > len(merged) {
		end = len(merged)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      merged[start:end],
		"pagination": page.Meta(total),
	})
}

func (h *Handler) listUserCollection(ctx context.Context, role models.Role, filter bson.M, page utils.PageParams) ([]adminUser, int64, error) {
	var coll = h.patients()
	switch role {
	case models.RoleDoctor:
		coll = h.doctors()
	case models.RoleAdmin:
		coll = h.admins()
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := make([]adminUser, 0)
	switch role {
	case models.RolePatient:
		var patients []models.Patient
		if err := cursor.All(ctx, &patients); err != nil {
			return nil, 0, err
		}
		for _, p := range patients {
			users = append(users, adminUser{
				ID: p.ID, Name: p.Name, Email: p.Email, Role: models.RolePatient,
				Phone: p.Phone, Gender: p.Gender, CreatedAt: p.CreatedAt,
			})
		}
	case models.RoleDoctor:
		var doctors []models.Doctor
		if err := cursor.All(ctx, &doctors); err != nil {
			return nil, 0, err
		}
		for _, d := range doctors {
			users = append(users, adminUser{
				ID: d.ID, Name: d.Name, Email: d.Email, Role: models.RoleDoctor,
				Phone: d.Phone, Specialization: d.Specialization, CreatedAt: d.CreatedAt,
			})
		}
	case models.RoleAdmin:
		var admins []models.Admin
		if err := cursor.All(ctx, &admins); err != nil {
			return nil, 0, err
		}
		for _, a := range admins {
			users = append(users, adminUser{
				ID: a.ID, Name: a.Name, Email: a.Email, Role: models.RoleAdmin, CreatedAt: a.CreatedAt,
			})
		}
	}

	return users, total, nil
}
