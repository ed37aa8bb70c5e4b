package models

import "time"

type Exercise struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateExerciseRequest struct {
	Name     string     `json:"name" validate:"required"`
	Type     string     `json:"type" validate:"required"`
	Duration int        `json:"duration" validate:"required,gt=0"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes"`
	// Points overrides the default award when present.
	Points *int `json:"points"`
}

type UpdateExerciseRequest struct {
	Name     *string    `json:"name"`
	Type     *string    `json:"type"`
	Duration *int       `json:"duration" validate:"omitempty,gt=0"`
	Date     *time.Time `json:"date"`
	Notes    *string    `json:"notes"`
}
