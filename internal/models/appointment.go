package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID primitive.ObjectID `bson:"patientId" json:"patientId"`
	DoctorID  primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	Date      time.Time          `bson:"date" json:"date"`
	Time      string             `bson:"time" json:"time"` // "HH:MM"
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status    AppointmentStatus  `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TransitionRule says who may move an appointment into a target status,
// and which current statuses that move is legal from.
type TransitionRule struct {
	Roles []Role
	From  []AppointmentStatus
}

// statusTransitions is the full permission matrix for status changes.
// "pending" as a target exists for doctor rescheduling.
var statusTransitions = map[AppointmentStatus]TransitionRule{
	StatusApproved:  {Roles: []Role{RoleDoctor}, From: []AppointmentStatus{StatusPending}},
	StatusRejected:  {Roles: []Role{RoleDoctor}, From: []AppointmentStatus{StatusPending}},
	StatusCompleted: {Roles: []Role{RoleDoctor}, From: []AppointmentStatus{StatusApproved}},
	StatusCancelled: {Roles: []Role{RolePatient, RoleAdmin}, From: []AppointmentStatus{StatusPending, StatusApproved}},
	StatusPending:   {Roles: []Role{RoleDoctor}, From: []AppointmentStatus{StatusPending}},
}

// TransitionRuleFor looks up the rule for a requested target status.
// ok is false for unknown targets.
func TransitionRuleFor(target AppointmentStatus) (TransitionRule, bool) {
	rule, ok := statusTransitions[target]
	return rule, ok
}

// RoleAllowed reports whether the given role may request this transition.
func (r TransitionRule) RoleAllowed(role Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// FromAllowed reports whether the transition is legal from the given status.
func (r TransitionRule) FromAllowed(current AppointmentStatus) bool {
	for _, from := range r.From {
		if from == current {
			return true
		}
	}
	return false
}
