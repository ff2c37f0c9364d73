package rest

import (
	"context"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
)

// UserGateway - REST шлюз пользователей.
// Создание и обновление используют разные payload'ы: пароль задаётся
// только при создании, дальше меняется отдельной операцией.
type UserGateway struct {
	client *Client
	users  resource[domain.User, domain.UserAddDTO]
}

// NewUserGateway создает шлюз пользователей.
func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{
		client: client,
		users:  newResource[domain.User, domain.UserAddDTO](client, "/users"),
	}
}

func (g *UserGateway) Search(ctx context.Context, q gateway.Query) (gateway.Page[domain.User], error) {
	return g.users.Search(ctx, q)
}

func (g *UserGateway) Get(ctx context.Context, uuid string) (*domain.User, error) {
	return g.users.Get(ctx, uuid)
}

func (g *UserGateway) List(ctx context.Context) ([]domain.User, error) {
	return g.users.List(ctx)
}

func (g *UserGateway) Create(ctx context.Context, dto domain.UserAddDTO) (*domain.User, error) {
	return g.users.Create(ctx, dto)
}

func (g *UserGateway) Update(ctx context.Context, uuid string, dto domain.UserUpdateDTO) (*domain.User, error) {
	var user domain.User
	if err := g.client.put(ctx, "/users/"+uuid, dto, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *UserGateway) Delete(ctx context.Context, uuid string) error {
	return g.users.Delete(ctx, uuid)
}

// ChangePassword меняет пароль пользователя.
func (g *UserGateway) ChangePassword(ctx context.Context, uuid string, dto domain.ChangePasswordDTO) (*domain.User, error) {
	var user domain.User
	if err := g.client.put(ctx, "/users/"+uuid+"/change-password", dto, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
