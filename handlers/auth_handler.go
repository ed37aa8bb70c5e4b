package handlers

import (
	"context"
	"net/http"

	"healthtrack-server/middleware"
	"healthtrack-server/models"
	"healthtrack-server/services"
)

type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthHandler(auth *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrMissingFields.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	token, user, err := h.auth.Register(ctx, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.AuthResponse{
		Message: "Kullanıcı başarıyla kaydedildi",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginRequest
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := middleware.ValidateStruct(input, services.ErrCredentialsMissing.Message); err != nil {
		middleware.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	token, user, err := h.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{
		Message: "Giriş başarılı",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
