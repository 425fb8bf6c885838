package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timeOfDayRe matches "HH:MM" in 24-hour time, single-digit hours allowed.
var timeOfDayRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a valid "HH:MM" time string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// AvailabilitySlot is one recurring weekly window a doctor accepts bookings in.
type AvailabilitySlot struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 (Sunday) - 6 (Saturday)
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM"
}

// Validate checks the slot's day and time formats.
func (s AvailabilitySlot) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek must be between 0 and 6, got %d", s.DayOfWeek)
	}
	if !ValidTimeOfDay(s.StartTime) {
		return fmt.Errorf("invalid startTime %q", s.StartTime)
	}
	if !ValidTimeOfDay(s.EndTime) {
		return fmt.Errorf("invalid endTime %q", s.EndTime)
	}
	return nil
}

// ValidateAvailability checks every slot in a weekly availability list.
func ValidateAvailability(slots []AvailabilitySlot) error {
	if slots == nil {
		return errors.New("availability must be an array")
	}
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Availability   []AvailabilitySlot `bson:"availability" json:"availability"`
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
