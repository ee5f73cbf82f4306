package validator

import (
	"context"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
		ok       bool
	}{
		{"ok", "alice", "alice@example.com", "password1", true},
		{"missing username", "", "alice@example.com", "password1", false},
		{"missing email", "alice", "", "password1", false},
		{"bad email", "alice", "alice.example.com", "password1", false},
		{"short password", "alice", "alice@example.com", "short", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRegister(ctx, tc.username, tc.email, tc.password)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, usecase.ErrValidation)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateLogin(context.Background(), "alice", "x"))
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), " ", "x"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "alice", ""), usecase.ErrValidation)
}

func TestValidateProfileUpdate_EmptyMeansUnchanged(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateProfileUpdate(context.Background(), "", "", ""))
	assert.ErrorIs(t, v.ValidateProfileUpdate(context.Background(), "", "nope", ""), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateProfileUpdate(context.Background(), "", "", "short"), usecase.ErrValidation)
}
