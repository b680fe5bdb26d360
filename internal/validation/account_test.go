package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/gamestore/internal/model"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "ada@example.com", valid: true},
		{email: "  ada@example.com ", valid: true},
		{email: "ada@example", valid: false},
		{email: "ada example@x.io", valid: false},
		{email: "@example.com", valid: false},
		{email: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsEmail(tt.email))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		email    string
		password string
		message  string
	}{
		{name: "ok", user: "Ada", email: "ada@example.com", password: "password1"},
		{name: "short name", user: "A", email: "ada@example.com", password: "password1", message: MsgName},
		{name: "bad email", user: "Ada", email: "ada", password: "password1", message: MsgEmail},
		{name: "short password", user: "Ada", email: "ada@example.com", password: "1234567", message: MsgPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.user, tt.email, tt.password)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, model.ErrValidation))
			assert.Equal(t, tt.message, model.Message(err))
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("ada@example.com", "x"))
	assert.Error(t, ValidateLogin("ada@example.com", ""))
	assert.Error(t, ValidateLogin("not-an-email", "password1"))
}
