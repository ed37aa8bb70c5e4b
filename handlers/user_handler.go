package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthtrack-server/middleware"
	"healthtrack-server/models"
	"healthtrack-server/services"
	"healthtrack-server/utils/errors"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type profileResponse struct {
	Message string       `json:"message"`
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type avatarResponse struct {
	Message   string `json:"message"`
	AvatarURL string `json:"avatarUrl"`
}

type pointsResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	_, ctx, cancel := authed(r)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.ProfileUpdate
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, errors.ErrInvalidInput.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(ctx, userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Message: "Kullanıcı profili güncellendi",
		Success: true,
		User:    user,
	})
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input models.AvatarRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrAvatarURLRequired.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.users.SetAvatar(ctx, userID, mux.Vars(r)["id"], input.AvatarURL); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarResponse{Message: "Avatar güncellendi", AvatarURL: input.AvatarURL})
}

func (h *UserHandler) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	// Decoding a string, fraction or bool into *int still allocates the
	// pointer, so the decode error has to be checked as well as nil.
	var input models.PointsRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, services.ErrInvalidPointsAmount)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrInvalidPointsAmount.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := h.users.AdjustPoints(ctx, userID, mux.Vars(r)["id"], input.Amount)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pointsResponse{Message: "Puan güncellendi", User: user})
}

func (h *UserHandler) Progress(w http.ResponseWriter, r *http.Request) {
	_, ctx, cancel := authed(r)
	defer cancel()

	progress, err := h.users.Progress(ctx, mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
