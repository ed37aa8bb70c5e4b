package models

import "time"

const (
	DefaultMedicationFrequency     = "Günde 1 kez"
	DefaultMedicationRemainingDays = 30
)

type Medication struct {
	ID            string     `json:"_id"`
	UserID        string     `json:"userId"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Frequency     string     `json:"frequency"`
	Time          string     `json:"time"`
	RemainingDays int        `json:"remainingDays"`
	Notes         string     `json:"notes"`
	IsActive      bool       `json:"isActive"`
	LastTaken     *time.Time `json:"lastTaken"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type CreateMedicationRequest struct {
	Name          string `json:"name" validate:"required"`
	Dosage        string `json:"dosage" validate:"required"`
	Frequency     string `json:"frequency"`
	Time          string `json:"time"`
	RemainingDays *int   `json:"remainingDays" validate:"omitempty,gte=0"`
	Notes         string `json:"notes"`
	IsActive      *bool  `json:"isActive"`
}

type UpdateMedicationRequest struct {
	Name          *string    `json:"name"`
	Dosage        *string    `json:"dosage"`
	Frequency     *string    `json:"frequency"`
	Time          *string    `json:"time"`
	RemainingDays *int       `json:"remainingDays" validate:"omitempty,gte=0"`
	Notes         *string    `json:"notes"`
	IsActive      *bool      `json:"isActive"`
	LastTaken     *time.Time `json:"lastTaken"`
}
