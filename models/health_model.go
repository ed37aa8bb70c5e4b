package models

import "time"

// HealthTypes lists the accepted health record tags.
var HealthTypes = []string{
	"weight",
	"bloodPressure",
	"bloodSugar",
	"exercise",
	"sleep",
	"sleepHours",
	"caloriesConsumed",
	"caloriesBurned",
	"waterIntake",
	"mood",
	"stressLevel",
}

func IsHealthType(t string) bool {
	for _, h := range HealthTypes {
		if h == t {
			return true
		}
	}
	return false
}

// HealthRecord is one measurement. Value is a float64 or a string (e.g.
// "120/80" for blood pressure).
type HealthRecord struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	Type         string    `json:"type"`
	Value        any       `json:"value"`
	Date         time.Time `json:"date"`
	Notes        *string   `json:"notes,omitempty"`
	Mood         any       `json:"mood,omitempty"`
	StressLevel  any       `json:"stressLevel,omitempty"`
	SleepQuality any       `json:"sleepQuality,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateHealthRecordRequest struct {
	Type         string     `json:"type" validate:"required"`
	Value        any        `json:"value"`
	Date         *time.Time `json:"date"`
	Notes        *string    `json:"notes"`
	Mood         any        `json:"mood"`
	StressLevel  any        `json:"stressLevel"`
	SleepQuality any        `json:"sleepQuality"`
}

type UpdateHealthRecordRequest struct {
	Type         *string    `json:"type"`
	Value        any        `json:"value"`
	Date         *time.Time `json:"date"`
	Notes        *string    `json:"notes"`
	Mood         any        `json:"mood"`
	StressLevel  any        `json:"stressLevel"`
	SleepQuality any        `json:"sleepQuality"`
}
