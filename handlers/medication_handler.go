package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthtrack-server/middleware"
	"healthtrack-server/models"
	"healthtrack-server/services"
)

type MedicationHandler struct {
	medications *services.MedicationService
}

func NewMedicationHandler(medications *services.MedicationService) *MedicationHandler {
	return &MedicationHandler{medications: medications}
}

func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.CreateMedicationRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrMedicationFieldsRequired.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}
	med, err := h.medications.Create(ctx, userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, med)
}

func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	list, err := h.medications.List(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.UpdateMedicationRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, "Geçersiz ilaç verisi"); err != nil {
		middleware.WriteError(w, err)
		return
	}
	med, err := h.medications.Update(ctx, userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, med)
}

func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	if err := h.medications.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "İlaç silindi")
}
