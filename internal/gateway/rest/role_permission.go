package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/frontandrew/workshop/internal/domain"
)

// RolePermissionGateway - REST шлюз связок роль-право.
type RolePermissionGateway struct {
	client *Client
}

// NewRolePermissionGateway создает шлюз связок.
func NewRolePermissionGateway(client *Client) *RolePermissionGateway {
	return &RolePermissionGateway{client: client}
}

const rolePermissionsPath = "/role-permissions"

// Create привязывает право к роли.
func (g *RolePermissionGateway) Create(ctx context.Context, link domain.RolePermission) (*domain.RolePermission, error) {
	if err := link.Validate(); err != nil {
		return nil, err
	}
	var created domain.RolePermission
	if err := g.client.post(ctx, rolePermissionsPath, link, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Find ищет связку по паре идентификаторов.
func (g *RolePermissionGateway) Find(ctx context.Context, roleID, permissionID int64) (*domain.RolePermission, error) {
	query := url.Values{}
	query.Set("roleId", strconv.FormatInt(roleID, 10))
	query.Set("permissionId", strconv.FormatInt(permissionID, 10))

	var link domain.RolePermission
	if err := g.client.get(ctx, rolePermissionsPath, query, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete разрывает связку по её id.
func (g *RolePermissionGateway) Delete(ctx context.Context, id int64) error {
	return g.client.delete(ctx, rolePermissionsPath+"/"+strconv.FormatInt(id, 10))
}
