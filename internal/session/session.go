package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/frontandrew/workshop/internal/pkg/jwt"
	"github.com/frontandrew/workshop/internal/pkg/logger"
	"github.com/samber/lo"
)

// Session - шлюз авторизации: токен плюс набор прав текущего пользователя.
// Явный объект с внедрением через конструктор, никакого глобального
// состояния. Проверки прав здесь чисто интерфейсные - настоящую
// авторизацию backend выполняет заново на каждом запросе.
type Session struct {
	auth   gateway.AuthGateway
	store  TokenStore
	logger logger.Logger

	mu          sync.RWMutex
	token       string
	permissions map[string]struct{}
}

// New создает сессию без аутентификации.
func New(auth gateway.AuthGateway, store TokenStore, log logger.Logger) *Session {
	return &Session{
		auth:        auth,
		store:       store,
		logger:      log,
		permissions: map[string]struct{}{},
	}
}

// Token возвращает текущий bearer токен; реализует rest.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated сообщает, установлена ли сессия.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// HasCapability проверяет право по имени. Чистый поиск по множеству
// в памяти, сетевых вызовов не делает.
func (s *Session) HasCapability(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.permissions[name]
	return ok
}

// Permissions возвращает отсортированную копию набора прав.
func (s *Session) Permissions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := lo.Keys(s.permissions)
	sort.Strings(names)
	return names
}

// Authenticate выполняет вход. Предыдущая сессия уничтожается до вызова
// сервера: после неудачного входа старое состояние тоже не переживает
// попытку, никакой "застрявшей" сессии не остаётся.
func (s *Session) Authenticate(ctx context.Context, email, password string) error {
	s.clear(ctx)

	s.logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	s.mu.Lock()
	s.token = result.Token
	s.permissions = permissionSet(result.Permissions)
	s.mu.Unlock()

	if err := s.store.Save(ctx, result.Token); err != nil {
		// Сессия в памяти валидна, пострадает только рестарт
		s.logger.Warn("Failed to persist session token", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"permissions": len(result.Permissions),
	})
	return nil
}

// RefreshCapabilities заново выводит права из токена. Пустой ответ или
// ошибка разбирают сессию целиком: пользователь без разрешимых прав
// считается неаутентифицированным.
func (s *Session) RefreshCapabilities(ctx context.Context, token string) error {
	permissions, err := s.auth.MyPermissions(ctx, token)
	if err != nil {
		s.logger.Warn("Failed to refresh permissions", map[string]interface{}{
			"error": err.Error(),
		})
		s.clear(ctx)
		return err
	}
	if len(permissions) == 0 {
		s.logger.Warn("Token resolves to zero permissions, ending session")
		s.clear(ctx)
		return domain.ErrNoSession
	}

	s.mu.Lock()
	s.token = token
	s.permissions = permissionSet(permissions)
	s.mu.Unlock()
	return nil
}

// Restore поднимает сессию после рестарта процесса: в слоте лежит только
// токен, поэтому перед работой обязателен один RefreshCapabilities.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	if jwt.Expired(token, time.Now()) {
		s.logger.Info("Stored token already expired, discarding")
		s.clear(ctx)
		return nil
	}

	return s.RefreshCapabilities(ctx, token)
}

// EndSession безусловно уничтожает токен и набор прав.
func (s *Session) EndSession(ctx context.Context) {
	s.clear(ctx)
	s.logger.Info("Session ended")
}

// Invalidate вызывается при любом ответе 401: токен мёртв, дальнейшие
// действия требуют повторного входа.
func (s *Session) Invalidate(ctx context.Context) {
	s.clear(ctx)
	s.logger.Warn("Session invalidated by unauthorized response")
}

func (s *Session) clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.permissions = map[string]struct{}{}
	s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		s.logger.Warn("Failed to clear token store", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func permissionSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range lo.Uniq(names) {
		set[name] = struct{}{}
	}
	return set
}
