package rest

import (
	"github.com/frontandrew/workshop/internal/domain"
)

// Остальные справочники без собственной логики: тонкие обёртки над resource.

// EmployeeGateway - REST шлюз сотрудников.
type EmployeeGateway struct {
	resource[domain.Employee, domain.EmployeeDTO]
}

func NewEmployeeGateway(client *Client) *EmployeeGateway {
	return &EmployeeGateway{newResource[domain.Employee, domain.EmployeeDTO](client, "/employees")}
}

// SupplierGateway - REST шлюз поставщиков.
type SupplierGateway struct {
	resource[domain.Supplier, domain.SupplierDTO]
}

func NewSupplierGateway(client *Client) *SupplierGateway {
	return &SupplierGateway{newResource[domain.Supplier, domain.SupplierDTO](client, "/suppliers")}
}

// CarPartGateway - REST шлюз запчастей.
type CarPartGateway struct {
	resource[domain.CarPart, domain.CarPartDTO]
}

func NewCarPartGateway(client *Client) *CarPartGateway {
	return &CarPartGateway{newResource[domain.CarPart, domain.CarPartDTO](client, "/car-parts")}
}

// ServiceGateway - REST шлюз прайс-листа работ.
type ServiceGateway struct {
	resource[domain.Service, domain.ServiceDTO]
}

func NewServiceGateway(client *Client) *ServiceGateway {
	return &ServiceGateway{newResource[domain.Service, domain.ServiceDTO](client, "/services")}
}

// RoleGateway - REST шлюз ролей.
type RoleGateway struct {
	resource[domain.Role, domain.RoleDTO]
}

func NewRoleGateway(client *Client) *RoleGateway {
	return &RoleGateway{newResource[domain.Role, domain.RoleDTO](client, "/roles")}
}

// PermissionGateway - REST шлюз прав.
type PermissionGateway struct {
	resource[domain.Permission, domain.PermissionDTO]
}

func NewPermissionGateway(client *Client) *PermissionGateway {
	return &PermissionGateway{newResource[domain.Permission, domain.PermissionDTO](client, "/permissions")}
}
