package models

import "testing"

func TestAvailabilitySlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    AvailabilitySlot
		wantErr bool
	}{
		{"weekday office hours", AvailabilitySlot{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}, false},
		{"sunday", AvailabilitySlot{DayOfWeek: 0, StartTime: "10:00", EndTime: "14:00"}, false},
		{"saturday", AvailabilitySlot{DayOfWeek: 6, StartTime: "08:30", EndTime: "12:00"}, false},
		{"single digit hour", AvailabilitySlot{DayOfWeek: 2, StartTime: "9:00", EndTime: "17:00"}, false},
		{"day too large", AvailabilitySlot{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}, true},
		{"negative day", AvailabilitySlot{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}, true},
		{"hour out of range", AvailabilitySlot{DayOfWeek: 1, StartTime: "24:00", EndTime: "17:00"}, true},
		{"minute out of range", AvailabilitySlot{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:60"}, true},
		{"missing start", AvailabilitySlot{DayOfWeek: 1, StartTime: "", EndTime: "17:00"}, true},
		{"not a time", AvailabilitySlot{DayOfWeek: 1, StartTime: "morning", EndTime: "17:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAvailability(t *testing.T) {
	if err := ValidateAvailability(nil); err == nil {
		t.Error("ValidateAvailability(nil): expected error")
	}

	if err := ValidateAvailability([]AvailabilitySlot{}); err != nil {
		t.Errorf("ValidateAvailability(empty): unexpected error %v", err)
	}

	valid := []AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 3, StartTime: "13:00", EndTime: "18:00"},
	}
	if err := ValidateAvailability(valid); err != nil {
		t.Errorf("ValidateAvailability(valid): unexpected error %v", err)
	}

	mixed := append(valid, AvailabilitySlot{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"})
	if err := ValidateAvailability(mixed); err == nil {
		t.Error("ValidateAvailability with a bad slot: expected error")
	}
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "9:05", "09:05", "12:30", "23:59"}
	for _, s := range valid {
		if !ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "24:00", "12:60", "1200", "12:3", "noon", "12:30:00"}
	for _, s := range invalid {
		if ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = true, want false", s)
		}
	}
}
