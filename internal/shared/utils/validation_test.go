package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketapp/internal/shared/errors"
)

func init() {
	RegisterValidation("test_color", func(v string) bool {
		return v == "red" || v == "blue"
	})
}

type sampleRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=a b"`
	Name    string `json:"name" validate:"required_if=Kind a"`
	Comment string `json:"comment" validate:"max=5"`
	Color   string `json:"color" validate:"test_color"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{Kind: "b", Color: "red"})
		assert.NoError(t, err)
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{Kind: "a", Comment: "too long", Color: "green"})
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Details, "name is required")
		assert.Contains(t, appErr.Details, "comment must be at most 5 characters long")
		assert.Contains(t, appErr.Details, "color failed validation for 'test_color'")
	})
}
