package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthtrack-server/middleware"
	"healthtrack-server/models"
	"healthtrack-server/services"
)

type HealthHandler struct {
	health *services.HealthService
}

func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

type healthCreatedResponse struct {
	Message string               `json:"message"`
	Data    *models.HealthRecord `json:"data"`
}

type healthUpdatedResponse struct {
	Message    string               `json:"message"`
	HealthData *models.HealthRecord `json:"healthData"`
}

func (h *HealthHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.CreateHealthRecordRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrHealthFieldsRequired.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}
	rec, err := h.health.Create(ctx, userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, healthCreatedResponse{Message: "Sağlık verisi başarıyla eklendi", Data: rec})
}

func (h *HealthHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	recs, err := h.health.List(ctx, userID, r.URL.Query().Get("type"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	rec, err := h.health.Get(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *HealthHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.UpdateHealthRecordRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	rec, err := h.health.Update(ctx, userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, healthUpdatedResponse{Message: "Kayıt güncellendi", HealthData: rec})
}

func (h *HealthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	if err := h.health.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Sağlık verisi silindi")
}
