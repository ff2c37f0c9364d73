package rest

import (
	"context"
	"net/http"

	"github.com/frontandrew/workshop/internal/gateway"
)

// AuthGateway - вход и запрос прав.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway создает шлюз аутентификации.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обменивает креды на токен и набор прав.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	var result gateway.LoginResult
	req := loginRequest{Email: email, Password: password}
	if err := g.client.post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyPermissions возвращает права, привязанные к токену.
// Токен передаётся явно: вызов идёт и до того, как сессия установлена.
func (g *AuthGateway) MyPermissions(ctx context.Context, token string) ([]string, error) {
	var permissions []string
	err := g.client.do(ctx, http.MethodGet, "/auth/me/permissions", nil, token, nil, &permissions)
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
