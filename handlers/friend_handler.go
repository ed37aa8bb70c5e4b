package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"healthtrack-server/middleware"
	"healthtrack-server/services"
)

type FriendHandler struct {
	friends *services.FriendService
}

func NewFriendHandler(friends *services.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

type friendRequestInput struct {
	FriendEmail string `json:"friendEmail"`
}

// requestID is the id of the user who sent the request.
type requestIDInput struct {
	RequestID string `json:"requestId"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input friendRequestInput
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.friends.SendRequest(ctx, userID, input.FriendEmail); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Arkadaşlık isteği başarıyla gönderildi")
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	reqs, err := h.friends.ListRequests(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input requestIDInput
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.friends.AcceptRequest(ctx, userID, input.RequestID); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Arkadaşlık isteği kabul edildi")
}

func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	var input requestIDInput
	if err := decodeJSON(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.friends.RejectRequest(ctx, userID, input.RequestID); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Arkadaşlık isteği reddedildi")
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	friends, err := h.friends.ListFriends(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	if err := h.friends.RemoveFriend(ctx, userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Arkadaş silindi")
}

func (h *FriendHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	userID, ctx, cancel := authed(r)
	defer cancel()

	board, err := h.friends.Leaderboard(ctx, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
