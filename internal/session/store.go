package session

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TokenStore - долговременный слот для единственного значения: токена сессии.
// Права никогда не сохраняются - после рестарта они заново выводятся из
// токена одним запросом RefreshCapabilities.
type TokenStore interface {
	// Load возвращает сохранённый токен; пустая строка - слот пуст.
	Load(ctx context.Context) (string, error)

	// Save записывает токен, затирая предыдущий.
	Save(ctx context.Context, token string) error

	// Delete очищает слот. Отсутствие токена не считается ошибкой.
	Delete(ctx context.Context) error
}

// FileStore хранит токен в файле с правами 0600.
type FileStore struct {
	path string
}

// NewFileStore создает файловое хранилище токена.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
