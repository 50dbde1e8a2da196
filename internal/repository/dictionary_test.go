package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordstack-backend/testing/suite"
)

func TestDictionaryRepository(t *testing.T) {
	t.Run("Empty table", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		dictRepo := NewDictionaryRepository(st.Connection)

		// When: nothing was imported
		count, err := dictRepo.Count(ctx)
		require.NoError(t, err)
		words, err := dictRepo.Words(ctx)
		require.NoError(t, err)

		// Then: there are no words
		assert.Zero(t, count)
		assert.Empty(t, words)
	})

	t.Run("SaveAll keeps order and skips repeats", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		dictRepo := NewDictionaryRepository(st.Connection)

		// Given: an import containing a repeat
		require.NoError(t, dictRepo.SaveAll(ctx, []string{"zebra", "apple", "zebra"}))

		// When: importing again with one new word
		require.NoError(t, dictRepo.SaveAll(ctx, []string{"apple", "mango"}))

		// Then: each word is stored once in first-seen order
		words, err := dictRepo.Words(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"zebra", "apple", "mango"}, words)

		count, err := dictRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
