package models

import "time"

const (
	DefaultGender        = "male"
	DefaultActivityLevel = "moderate"
	RoleUser             = "user"
)

// User is the account document. LastActiveDate is midnight of the last
// active calendar day.
type User struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Age            *int            `json:"age"`
	Height         *float64        `json:"height"`
	Weight         *float64        `json:"weight"`
	Gender         string          `json:"gender"`
	ActivityLevel  string          `json:"activityLevel"`
	AvatarURL      *string         `json:"avatarUrl"`
	Role           string          `json:"role"`
	Points         int             `json:"points"`
	CurrentStreak  int             `json:"currentStreak"`
	LastActiveDate *time.Time      `json:"lastActiveDate"`
	WeeklyPoints   int             `json:"weeklyPoints"`
	Friends        []string        `json:"friends"`
	FriendRequests []FriendRequest `json:"friendRequests"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// FriendRequest is a pending edge stored on the receiver.
type FriendRequest struct {
	From       string    `json:"from"`
	FromName   string    `json:"fromName"`
	FromEmail  string    `json:"fromEmail"`
	FromAvatar *string   `json:"fromAvatar"`
	Date       time.Time `json:"date"`
}

func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

func (u *User) PendingRequestFrom(senderID string) (FriendRequest, bool) {
	for _, r := range u.FriendRequests {
		if r.From == senderID {
			return r, true
		}
	}
	return FriendRequest{}, false
}

type RegisterRequest struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=6"`
	Age           *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Height        *float64 `json:"height" validate:"omitempty,gte=0"`
	Weight        *float64 `json:"weight" validate:"omitempty,gte=0"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activityLevel"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// ProfileUpdate carries only the fields the caller sent.
type ProfileUpdate struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Age           *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Height        *float64 `json:"height" validate:"omitempty,gte=0"`
	Weight        *float64 `json:"weight" validate:"omitempty,gte=0"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.Height == nil &&
		p.Weight == nil && p.Gender == nil && p.ActivityLevel == nil
}

type AvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required"`
}

type PointsRequest struct {
	Amount *int `json:"amount" validate:"required"`
}
