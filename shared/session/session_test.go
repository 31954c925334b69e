package session_test

import (
	"context"
	"testing"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want session.Session
	}{
		{
			name: "empty context is unauthenticated",
			ctx:  context.Background(),
			want: session.Session{Role: role.Unauthenticated},
		},
		{
			name: "agent session",
			ctx: session.WithSession(context.Background(), session.Session{
				UserID: "agent-1", Email: "a@example.com", Role: role.Agent, TokenID: "tok",
			}),
			want: session.Session{UserID: "agent-1", Email: "a@example.com", Role: role.Agent, TokenID: "tok"},
		},
		{
			name: "unknown role degrades to unauthenticated",
			ctx: context.WithValue(
				context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
				constant.ContextKeyUserRole, "admin"),
			want: session.Session{UserID: "user-1", Role: role.Unauthenticated},
		},
		{
			name: "role without user id is unauthenticated",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserRole, "traveler"),
			want: session.Session{Role: role.Unauthenticated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.FromContext(tt.ctx))
		})
	}
}

func TestSession_Is(t *testing.T) {
	traveler := session.Session{UserID: "u", Role: role.Traveler}

	assert.True(t, traveler.Authenticated())
	assert.True(t, traveler.Is(role.Traveler))
	assert.False(t, traveler.Is(role.Agent))
	assert.False(t, session.Session{}.Is(role.Unauthenticated))
}
