package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinPayload struct {
	PIN string `validate:"required,redemption_pin"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct returns no errors", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(pinPayload{PIN: "1234"}))
	})

	t.Run("field errors carry tag and message", func(t *testing.T) {
		errs := ValidateStruct(pinPayload{PIN: "12ab"})
		require.Len(t, errs, 1)
		assert.Equal(t, "PIN", errs[0].Field)
		assert.Equal(t, "redemption_pin", errs[0].Tag)
		assert.Equal(t, "Redemption PIN must be exactly 4 digits", errs[0].Message)
	})

	t.Run("nil value does not panic", func(t *testing.T) {
		var errs ValidationErrors
		assert.NotPanics(t, func() {
			errs = ValidateStruct(nil)
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "struct", errs[0].Tag)
	})

	t.Run("non-struct value does not panic", func(t *testing.T) {
		var errs ValidationErrors
		assert.NotPanics(t, func() {
			errs = ValidateStruct("not a struct")
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "struct", errs[0].Tag)
	})
}
