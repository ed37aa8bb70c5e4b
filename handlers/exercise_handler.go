package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthtrack-server/middleware"
	"healthtrack-server/models"
	"healthtrack-server/services"
)

type ExerciseHandler struct {
	exercises *services.ExerciseService
}

func NewExerciseHandler(exercises *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

type exerciseCreatedResponse struct {
	Message    string `json:"message"`
	ExerciseID string `json:"exerciseId"`
}

type exerciseUpdatedResponse struct {
	Message  string           `json:"message"`
	Exercise *models.Exercise `json:"exercise"`
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.CreateExerciseRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrMissingFields.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}
	ex, err := h.exercises.Create(ctx, userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exerciseCreatedResponse{Message: "Egzersiz kaydı eklendi", ExerciseID: ex.ID})
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	list, err := h.exercises.List(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.UpdateExerciseRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	ex, err := h.exercises.Update(ctx, userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exerciseUpdatedResponse{Message: "Egzersiz kaydı güncellendi", Exercise: ex})
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	if err := h.exercises.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Egzersiz kaydı silindi")
}
