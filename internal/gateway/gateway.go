package gateway

import (
	"context"

	"github.com/frontandrew/workshop/internal/domain"
)

// Page - одна страница результата поиска.
type Page[E any] struct {
	Content       []E   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// Query - параметры поиска по списку сущностей.
// Field/Value - необязательный фильтр; пустой Field означает выборку без фильтра.
type Query struct {
	Field      string
	Value      string
	PageNumber int    // нумерация с нуля
	PageSize   int    // 0 = размер страницы по умолчанию
	Order      string // asc | desc, пустое = asc
}

// Crud - единый контракт шлюза для адресуемых по uuid сущностей.
// Каждая операция - ровно один сетевой обмен, без кэша, без повторов
// и без оптимистичных мутаций: показанное пользователю состояние всегда
// отражает последний успешный ответ сервера.
type Crud[E any, D any] interface {
	// Search возвращает страницу сущностей с необязательным фильтром.
	Search(ctx context.Context, q Query) (Page[E], error)

	// Get возвращает сущность по uuid.
	Get(ctx context.Context, uuid string) (*E, error)

	// List возвращает весь справочник без пагинации (для виджетов выбора).
	List(ctx context.Context) ([]E, error)

	// Create создает сущность и возвращает её серверное представление.
	Create(ctx context.Context, dto D) (*E, error)

	// Update обновляет сущность по uuid.
	Update(ctx context.Context, uuid string, dto D) (*E, error)

	// Delete удаляет сущность по uuid.
	Delete(ctx context.Context, uuid string) error
}

// Шлюзы справочников. Отличаются только типами сущности и payload'а.
type (
	CustomerGateway     interface{ Crud[domain.Customer, domain.CustomerDTO] }
	CustomerCarGateway  interface{ Crud[domain.CustomerCar, domain.CustomerCarDTO] }
	EmployeeGateway     interface{ Crud[domain.Employee, domain.EmployeeDTO] }
	SupplierGateway     interface{ Crud[domain.Supplier, domain.SupplierDTO] }
	CarPartGateway      interface{ Crud[domain.CarPart, domain.CarPartDTO] }
	ServiceGateway      interface{ Crud[domain.Service, domain.ServiceDTO] }
	ServiceOrderGateway interface{ Crud[domain.ServiceOrder, domain.ServiceOrderDTO] }
	RoleGateway         interface{ Crud[domain.Role, domain.RoleDTO] }
	PermissionGateway   interface{ Crud[domain.Permission, domain.PermissionDTO] }
)

// UserGateway отличается от общего контракта: payload создания и обновления
// разные (пароль задаётся только при создании), плюс отдельная смена пароля.
type UserGateway interface {
	Search(ctx context.Context, q Query) (Page[domain.User], error)
	Get(ctx context.Context, uuid string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, dto domain.UserAddDTO) (*domain.User, error)
	Update(ctx context.Context, uuid string, dto domain.UserUpdateDTO) (*domain.User, error)
	Delete(ctx context.Context, uuid string) error
	ChangePassword(ctx context.Context, uuid string, dto domain.ChangePasswordDTO) (*domain.User, error)
}

// ServiceLineGateway управляет строками работ заказ-наряда.
// Строки адресуются числовым id, а не uuid.
type ServiceLineGateway interface {
	Get(ctx context.Context, id int64) (*domain.ServiceOrderLine, error)
	Create(ctx context.Context, dto domain.ServiceLineDTO) (*domain.ServiceOrderLine, error)
	Update(ctx context.Context, id int64, dto domain.ServiceLineDTO) (*domain.ServiceOrderLine, error)
	Delete(ctx context.Context, id int64) error
}

// CarPartLineGateway управляет строками запчастей заказ-наряда.
type CarPartLineGateway interface {
	Get(ctx context.Context, id int64) (*domain.CarPartOrderLine, error)
	Create(ctx context.Context, dto domain.CarPartLineDTO) (*domain.CarPartOrderLine, error)
	Update(ctx context.Context, id int64, dto domain.CarPartLineDTO) (*domain.CarPartOrderLine, error)
	Delete(ctx context.Context, id int64) error
}

// RolePermissionGateway связывает роли с правами.
// Работает целиком в числовом пространстве идентификаторов.
type RolePermissionGateway interface {
	Create(ctx context.Context, link domain.RolePermission) (*domain.RolePermission, error)
	Find(ctx context.Context, roleID, permissionID int64) (*domain.RolePermission, error)
	Delete(ctx context.Context, id int64) error
}

// LoginResult - ответ сервера на вход: токен и набор прав роли пользователя.
type LoginResult struct {
	Token       string   `json:"token"`
	Permissions []string `json:"permissions"`
}

// AuthGateway - вход и получение прав текущего токена.
type AuthGateway interface {
	// Login обменивает креды на токен и набор прав.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// MyPermissions возвращает права, привязанные к переданному токену.
	MyPermissions(ctx context.Context, token string) ([]string, error)
}
