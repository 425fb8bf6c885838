package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediconnect-server/internal/models"
)

// patientBrief and doctorBrief are the reference summaries embedded in
// appointment and medical record responses in place of raw ObjectIDs.
type patientBrief struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
}

type doctorBrief struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Specialization string             `json:"specialization,omitempty"`
}

func (h *Handler) patientBriefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]patientBrief, error) {
	briefs := make(map[primitive.ObjectID]patientBrief, len(ids))
	if len(ids) == 0 {
		return briefs, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "phone": 1})
	cursor, err := h.patients().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	for _, p := range patients {
		briefs[p.ID] = patientBrief{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
	}
	return briefs, nil
}

func (h *Handler) doctorBriefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]doctorBrief, error) {
	briefs := make(map[primitive.ObjectID]doctorBrief, len(ids))
	if len(ids) == 0 {
		return briefs, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "specialization": 1})
	cursor, err := h.doctors().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	for _, d := range doctors {
		briefs[d.ID] = doctorBrief{ID: d.ID, Name: d.Name, Email: d.Email, Specialization: d.Specialization}
	}
	return briefs, nil
}

// appointmentView is an appointment with its references resolved.
type appointmentView struct {
	models.Appointment
	Patient *patientBrief `json:"patient,omitempty"`
	Doctor  *doctorBrief  `json:"doctor,omitempty"`
}

func (h *Handler) appointmentViews(ctx context.Context, apts []models.Appointment) ([]appointmentView, error) {
	patientIDs := make([]primitive.ObjectID, 0, len(apts))
	doctorIDs := make([]primitive.ObjectID, 0, len(apts))
	for _, a := range apts {
		patientIDs = append(patientIDs, a.PatientID)
		doctorIDs = append(doctorIDs, a.DoctorID)
	}

	patients, err := h.patientBriefs(ctx, patientIDs)
	if err != nil {
		return nil, err
	}
	doctors, err := h.doctorBriefs(ctx, doctorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]appointmentView, 0, len(apts))
	for _, a := range apts {
		view := appointmentView{Appointment: a}
		if p, ok := patients[a.PatientID]; ok {
			brief := p
			view.Patient = &brief
		}
		if d, ok := doctors[a.DoctorID]; ok {
			brief := d
			view.Doctor = &brief
		}
		views = append(views, view)
	}
	return views, nil
}

// parseAppointmentDate accepts the calendar forms clients send: a plain
// "YYYY-MM-DD" or a full RFC3339 timestamp.
func parseAppointmentDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
