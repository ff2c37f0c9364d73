package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileStore тестирует файловый слот токена
func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	t.Run("пустой слот возвращает пустую строку без ошибки", func(t *testing.T) {
		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("запись и чтение", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "session-token"))

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("повторная запись затирает предыдущий токен", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "replacement"))

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "replacement", token)
	})

	t.Run("удаление очищает слот", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx))

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("удаление пустого слота не считается ошибкой", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx))
	})
}
