package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/utils/errors"
	"healthtrack-server/utils/metrics"
)

var (
	ErrFriendEmailRequired = errors.ErrInvalidInput.WithMessage("Arkadaş e-posta adresi gerekli")
	ErrReceiverNotFound    = errors.ErrNotFound.WithMessage("Arkadaş olarak eklemek istediğiniz kullanıcı bulunamadı")
	ErrSelfRequest         = errors.NewAPIError("INVALID_OPERATION", "Kendinize arkadaşlık isteği gönderemezsiniz", http.StatusBadRequest)
	ErrAlreadyFriends      = errors.ErrConflict.WithMessage("Bu kullanıcı zaten arkadaşınız")
	ErrRequestPending      = errors.ErrConflict.WithMessage("Bu kullanıcıya zaten bir arkadaşlık isteği gönderdiniz")
	ErrRequestIDRequired   = errors.ErrInvalidInput.WithMessage("İstek ID gerekli")
	ErrRequestNotFound     = errors.ErrNotFound.WithMessage("Arkadaşlık isteği bulunamadı")
	ErrSenderNotFound      = errors.ErrNotFound.WithMessage("İstek gönderen kullanıcı bulunamadı")
	ErrNotFriends          = errors.ErrNotFound.WithMessage("Bu kullanıcı arkadaşınız değil")
)

// FriendService drives the friend request state machine. Edges live on the
// user documents: pending requests on the receiver, accepted friends on both.
type FriendService struct {
	users   store.Users
	now     Clock
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewFriendService(users store.Users, now Clock, log *zap.Logger, m *metrics.Metrics) *FriendService {
	return &FriendService{users: users, now: now, log: log, metrics: m}
}

func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverEmail string) error {
	receiverEmail = strings.TrimSpace(receiverEmail)
	if receiverEmail == "" {
		return ErrFriendEmailRequired
	}
	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return userError(err)
	}
	receiver, err := s.users.GetByEmail(ctx, receiverEmail)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return ErrReceiverNotFound
		}
		return errors.Internal(err)
	}
	if receiver.ID == sender.ID {
		return ErrSelfRequest
	}
	if err := conflictFor(receiver, sender.ID); err != nil {
		return err
	}

	req := models.FriendRequest{
		From:       sender.ID,
		FromName:   sender.Name,
		FromEmail:  sender.Email,
		FromAvatar: sender.AvatarURL,
		Date:       s.now(),
	}
	if err := s.users.AddFriendRequest(ctx, receiver.ID, req); err != nil {
		if stderrors.Is(err, store.ErrConflict) {
			// Lost a race; report whichever edge now exists.
			if fresh, ferr := s.users.GetByID(ctx, receiver.ID); ferr == nil {
				if cerr := conflictFor(fresh, sender.ID); cerr != nil {
					return cerr
				}
			}
			return ErrRequestPending
		}
		if stderrors.Is(err, store.ErrNotFound) {
			return ErrReceiverNotFound
		}
		return errors.Internal(err)
	}

	s.metrics.FriendshipTransition("requested")
	s.log.Info("friend_request_sent", zap.String("from", sender.ID), zap.String("to", receiver.ID))
	return nil
}

func conflictFor(receiver *models.User, senderID string) error {
	if receiver.HasFriend(senderID) {
		return ErrAlreadyFriends
	}
	if _, ok := receiver.PendingRequestFrom(senderID); ok {
		return ErrRequestPending
	}
	return nil
}

func (s *FriendService) AcceptRequest(ctx context.Context, receiverID, senderID string) error {
	if senderID == "" {
		return ErrRequestIDRequired
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return userError(err)
	}
	if _, ok := receiver.PendingRequestFrom(senderID); !ok {
		return ErrRequestNotFound
	}
	if _, err := s.users.GetByID(ctx, senderID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return ErrSenderNotFound
		}
		return errors.Internal(err)
	}

	if err := s.users.AcceptFriendRequest(ctx, receiverID, senderID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		return errors.Internal(err)
	}

	s.metrics.FriendshipTransition("accepted")
	s.log.Info("friend_request_accepted", zap.String("from", senderID), zap.String("to", receiverID))
	return nil
}

// RejectRequest drops the pending request if there is one. Rejecting a
// request that no longer exists succeeds.
func (s *FriendService) RejectRequest(ctx context.Context, receiverID, senderID string) error {
	if senderID == "" {
		return ErrRequestIDRequired
	}
	removed, err := s.users.RemoveFriendRequest(ctx, receiverID, senderID)
	if err != nil {
		return userError(err)
	}
	if removed {
		s.metrics.FriendshipTransition("rejected")
		s.log.Info("friend_request_rejected", zap.String("from", senderID), zap.String("to", receiverID))
	}
	return nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if err := s.users.RemoveFriendship(ctx, userID, friendID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return ErrNotFriends
		}
		return errors.Internal(err)
	}
	s.metrics.FriendshipTransition("removed")
	s.log.Info("friend_removed", zap.String("user_id", userID), zap.String("friend_id", friendID))
	return nil
}

func (s *FriendService) ListRequests(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	if u.FriendRequests == nil {
		return []models.FriendRequest{}, nil
	}
	return u.FriendRequests, nil
}

// ListFriends returns the user's friends in the order they were added.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	return s.friendsOf(ctx, u)
}

func (s *FriendService) friendsOf(ctx context.Context, u *models.User) ([]models.User, error) {
	if len(u.Friends) == 0 {
		return []models.User{}, nil
	}
	found, err := s.users.ListByIDs(ctx, u.Friends)
	if err != nil {
		return nil, errors.Internal(err)
	}
	byID := make(map[string]models.User, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	out := make([]models.User, 0, len(found))
	for _, id := range u.Friends {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Leaderboard ranks the user among their friends.
func (s *FriendService) Leaderboard(ctx context.Context, userID string) (models.Leaderboard, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Leaderboard{}, userError(err)
	}
	friends, err := s.friendsOf(ctx, u)
	if err != nil {
		return models.Leaderboard{}, err
	}
	return BuildLeaderboard(*u, friends), nil
}
