package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"answer": 42})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Username        string `validate:"required"`
		Email           string `validate:"required,email"`
		ConfirmPassword string `validate:"eqfield=Username"`
		Subscription    string `validate:"oneof=none basic silver gold"`
	}

	err := validator.New().Struct(request{
		Email:           "not-an-email",
		ConfirmPassword: "mismatch",
		Subscription:    "platinum",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field ConfirmPassword must match field Username")
	assert.Contains(t, resp.Error, "field Subscription must be one of: none basic silver gold")
}
