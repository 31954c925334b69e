package session

import (
	"context"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/role"
)

// Session is the identity the auth middleware attached to the request.
type Session struct {
	UserID  string
	Email   string
	Role    role.Role
	TokenID string
}

func FromContext(ctx context.Context) Session {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	rawRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)

	r, err := role.Parse(rawRole)
	if err != nil || userID == constant.Empty {
		r = role.Unauthenticated
	}

	return Session{
		UserID:  userID,
		Email:   email,
		Role:    r,
		TokenID: tokenID,
	}
}

// WithSession stores the session values under the keys FromContext reads.
func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, s.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, s.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, s.Role.String())
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, s.TokenID)

	return ctx
}

func (s Session) Authenticated() bool {
	return s.Role != role.Unauthenticated
}

func (s Session) Is(r role.Role) bool {
	return s.Authenticated() && s.Role == r
}
