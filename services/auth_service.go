package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/utils/errors"
)

var (
	ErrMissingFields      = errors.ErrInvalidInput.WithMessage("Tüm zorunlu alanları doldurun")
	ErrEmailTaken         = errors.ErrConflict.WithMessage("Bu e-posta adresi zaten kullanılıyor")
	ErrInvalidCredentials = errors.NewAPIError("INVALID_CREDENTIALS", "Geçersiz e-posta veya şifre", http.StatusUnauthorized)
	ErrCredentialsMissing = errors.ErrInvalidInput.WithMessage("E-posta ve şifre gerekli")
	ErrUserNotFound       = errors.ErrNotFound.WithMessage("Kullanıcı bulunamadı")
)

// Claims is the JWT payload issued at login and registration.
type Claims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  store.Users
	secret []byte
	ttl    time.Duration
	now    Clock
	log    *zap.Logger
}

func NewAuthService(users store.Users, secret string, ttl time.Duration, now Clock, log *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, now: now, log: log}
}

// Register creates a user with a bcrypt password hash and returns a session
// token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return "", nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, errors.Wrap(err, "HASH_ERROR", "Şifre işlenemedi", http.StatusInternalServerError)
	}

	u := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Age:           req.Age,
		Height:        req.Height,
		Weight:        req.Weight,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Role:          models.RoleUser,
		CreatedAt:     s.now(),
	}
	if u.Gender == "" {
		u.Gender = models.DefaultGender
	}
	if u.ActivityLevel == "" {
		u.ActivityLevel = models.DefaultActivityLevel
	}

	if err := s.users.Create(ctx, u); err != nil {
		if stderrors.Is(err, store.ErrDuplicateEmail) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, errors.Internal(err)
	}

	token, err := s.GenerateToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user_registered", zap.String("user_id", u.ID))
	return token, u, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrCredentialsMissing
	}
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) GenerateToken(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "JWT_ERROR", "Token oluşturulamadı", http.StatusInternalServerError)
	}
	return signed, nil
}

// ParseToken validates signature and expiry and returns the user id.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", errors.ErrInvalidToken
	}
	return claims.UserID, nil
}
