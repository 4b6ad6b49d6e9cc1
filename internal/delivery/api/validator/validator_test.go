package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Title    string `json:"title,omitempty" validate:"omitempty,max=5"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sampleRequest{Username: "alice", Email: "alice@example.com"}))

	err := v.Validate(&sampleRequest{Email: "not-an-email", Title: "too long"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"username": "required",
		"email":    "email",
		"title":    "max=5",
	}, Details(err))
}

func TestDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, Details(assert.AnError))
}
