package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrfksIv/morf-stream/pkg/validator"
)

func TestVar(t *testing.T) {
	v := validator.NewValidator()

	t.Run("accepts a value within bounds", func(t *testing.T) {
		assert.NoError(t, v.Var("Alice", "required,max=64"))
	})

	t.Run("rejects an empty value", func(t *testing.T) {
		assert.Error(t, v.Var("", "required,max=64"))
	})

	t.Run("rejects a value over the limit", func(t *testing.T) {
		assert.Error(t, v.Var(strings.Repeat("a", 65), "required,max=64"))
	})
}
