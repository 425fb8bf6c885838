package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"mediconnect-server/internal/models"
)

// NotificationService sends SMS updates about appointment lifecycle events.
type NotificationService struct {
	textbeltKey string
}

func NewNotificationService(textbeltKey string) *NotificationService {
	return &NotificationService{textbeltKey: textbeltKey}
}

// SendAppointmentRequestedSMS notifies the patient their booking request went in.
func (s *NotificationService) SendAppointmentRequestedSMS(patient *models.Patient, apt *models.Appointment) {
	if patient.Phone == "" {
		log.Println("SMS not sent: patient has no phone number.")
		return
	}

	smsBody := fmt.Sprintf(
		"Appointment requested for %s at %s. You will be notified once the doctor responds.",
		apt.Date.Format("Jan 2, 2006"),
		apt.Time,
	)

	// Send in a goroutine so it doesn't block the API response
	go s.sendSmsWithTextbelt(patient.Phone, smsBody)
}

// SendAppointmentStatusSMS notifies the patient about a status change.
func (s *NotificationService) SendAppointmentStatusSMS(patient *models.Patient, apt *models.Appointment) {
	if patient.Phone == "" {
		log.Println("SMS not sent: patient has no phone number.")
		return
	}

	smsBody := fmt.Sprintf(
		"Your appointment on %s at %s is now %s.",
		apt.Date.Format("Jan 2, 2006"),
		apt.Time,
		apt.Status,
	)

	go s.sendSmsWithTextbelt(patient.Phone, smsBody)
}

func (s *NotificationService) sendSmsWithTextbelt(phone, message string) {
	if s.textbeltKey == "" {
		log.Println("SMS not sent: TEXTBELT_API_KEY is not configured.")
		return
	}

	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	} else {
		log.Printf("Successfully sent SMS via Textbelt to %s", phone)
	}
}
