package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollPatients       = "patients"
	CollDoctors        = "doctors"
	CollAdmins         = "admins"
	CollAppointments   = "appointments"
	CollMedicalRecords = "medicalRecords"
)

// EnsureIndexes creates the indexes the query paths rely on. Safe to call on
// every startup; Mongo treats existing identical indexes as a no-op.
//
// The (doctorId, date, time) index backs the pre-insert double-booking check.
// It is deliberately not unique: two concurrent bookings of the same slot can
// still both pass the existence check. See DESIGN.md.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	for _, coll := range []string{CollPatients, CollDoctors, CollAdmins} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: unique,
		}); err != nil {
			return err
		}
	}

	if _, err := db.Collection(CollDoctors).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "specialization", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(CollAppointments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(CollMedicalRecords).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return err
	}

	return nil
}
