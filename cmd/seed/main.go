package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

var specializations = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(getEnv("MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(getEnv("MONGO_DATABASE", "mediconnect"))

	if err := models.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("create indexes: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedDoctors(ctx, db, len(specializations)); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(ctx, db, 50); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, db *mongo.Database) error {
	email := strings.ToLower(getEnv("ADMIN_EMAIL", "admin@mediconnect.local"))
	password := getEnv("ADMIN_PASSWORD", "admin123")

	coll := db.Collection(models.CollAdmins)
	count, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("admin %s already exists, skipping", email)
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = coll.InsertOne(ctx, models.Admin{
		ID:           primitive.NewObjectID(),
		Name:         "System Administrator",
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	log.Printf("admin %s created", email)
	return nil
}

func seedDoctors(ctx context.Context, db *mongo.Database, count int) error {
	log.Printf("seeding %d doctors", count)

	// Every seeded doctor works weekdays 09:00-17:00.
	weekdays := make([]models.AvailabilitySlot, 0, 5)
	for day := 1; day <= 5; day++ {
		weekdays = append(weekdays, models.AvailabilitySlot{
			DayOfWeek: day,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
	}

	hash, err := utils.HashPassword(getEnv("SEED_PASSWORD", "doctor123"))
	if err != nil {
		return err
	}

	coll := db.Collection(models.CollDoctors)
	for i := 0; i < count; i++ {
		email := strings.ToLower(gofakeit.Email())

		existing, err := coll.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		_, err = coll.InsertOne(ctx, models.Doctor{
			ID:             primitive.NewObjectID(),
			Name:           "Dr. " + gofakeit.Name(),
			Email:          email,
			Phone:          gofakeit.Phone(),
			Specialization: specializations[i%len(specializations)],
			Availability:   weekdays,
			PasswordHash:   hash,
			CreatedAt:      time.Now(),
		})
		if err != nil {
			return err
		}
	}

	log.Println("doctors seeded")
	return nil
}

func seedPatients(ctx context.Context, db *mongo.Database, count int) error {
	log.Printf("seeding %d patients", count)

	genders := []string{"male", "female", "other"}

	hash, err := utils.HashPassword(getEnv("SEED_PASSWORD", "patient123"))
	if err != nil {
		return err
	}

	coll := db.Collection(models.CollPatients)
	for i := 0; i < count; i++ {
		email := strings.ToLower(gofakeit.Email())

		existing, err := coll.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		_, err = coll.InsertOne(ctx, models.Patient{
			ID:           primitive.NewObjectID(),
			Name:         gofakeit.Name(),
			Email:        email,
			Phone:        gofakeit.Phone(),
			Gender:       genders[gofakeit.Number(0, len(genders)-1)],
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			return err
		}
	}

	log.Println("patients seeded")
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
