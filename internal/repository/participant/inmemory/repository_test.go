package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrfksIv/morf-stream/internal/repository/participant"
)

func TestRepo(t *testing.T) {
	t.Run("add and identify", func(t *testing.T) {
		r := NewRepo()

		require.NoError(t, r.Add("a"))
		require.NoError(t, r.Add("b"))
		assert.ErrorIs(t, r.Add("a"), participant.ErrAlreadyExists)

		// unidentified participants are invisible in the roster
		assert.Empty(t, r.DisplayNames())

		require.NoError(t, r.SetDisplayName("a", "Alice"))
		require.NoError(t, r.SetDisplayName("b", "Bob"))
		assert.Equal(t, []string{"Alice", "Bob"}, r.DisplayNames())
	})

	t.Run("identify is idempotent and overwrites", func(t *testing.T) {
		r := NewRepo()

		require.NoError(t, r.Add("a"))
		require.NoError(t, r.SetDisplayName("a", "Alice"))
		require.NoError(t, r.SetDisplayName("a", "Alicia"))

		assert.Equal(t, []string{"Alicia"}, r.DisplayNames())
	})

	t.Run("identify unknown id", func(t *testing.T) {
		r := NewRepo()

		assert.ErrorIs(t, r.SetDisplayName("ghost", "Ghost"), participant.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		r := NewRepo()

		require.NoError(t, r.Add("a"))
		require.NoError(t, r.Add("b"))
		require.NoError(t, r.SetDisplayName("a", "Alice"))
		require.NoError(t, r.SetDisplayName("b", "Bob"))

		removed, err := r.Remove("a")
		require.NoError(t, err)
		assert.True(t, removed.Identified)
		assert.Equal(t, "Alice", removed.DisplayName)
		assert.Equal(t, []string{"Bob"}, r.DisplayNames())

		_, err = r.Remove("a")
		assert.ErrorIs(t, err, participant.ErrNotFound)
	})

	t.Run("roster keeps join order", func(t *testing.T) {
		r := NewRepo()

		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, r.Add(id))
			require.NoError(t, r.SetDisplayName(id, id))
		}

		assert.Equal(t, []string{"c", "a", "b"}, r.DisplayNames())

		_, err := r.Remove("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b"}, r.DisplayNames())
	})
}
