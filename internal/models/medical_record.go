package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalRecord is authored by a doctor for a patient, optionally tied to
// the appointment it came out of. Only the authoring doctor may change it.
type MedicalRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID     primitive.ObjectID `bson:"patientId" json:"patientId"`
	DoctorID      primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	AppointmentID primitive.ObjectID `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Diagnosis     string             `bson:"diagnosis" json:"diagnosis"`
	Prescription  string             `bson:"prescription" json:"prescription"`
	Notes         string             `bson:"notes" json:"notes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
