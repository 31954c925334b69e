package dto

import (
	"strings"
	"time"

	"hotelbooking/infras/jwt"
	userModel "hotelbooking/internal/domains/user/model"
	"hotelbooking/shared/constant"
	gModel "hotelbooking/shared/model"
	"hotelbooking/shared/session"
	"hotelbooking/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role"      validate:"omitempty,role"`
}

// ToUserModel builds the account. Role defaults to traveler.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = constant.RoleTraveler
	}

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		FullName: strings.TrimSpace(r.FullName),
		Role:     role,
		Active:   true,
		Metadata: gModel.NewMetadata(constant.SystemUser, timezone.Now()),
	}
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *RegisterResponse) FromModel(user userModel.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
}

// LoginRequest.Role is set by the traveler and agent sign-in screens. A user
// signing in through the wrong screen is rejected.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type SessionResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

func (r *SessionResponse) FromSession(s session.Session) {
	r.ID = s.UserID
	r.Email = s.Email
	r.Role = s.Role.String()
	r.Authenticated = s.Authenticated()
}
