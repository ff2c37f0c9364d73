package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/samber/lo"
)

// Имена прав, открывающих экраны. VIEW открывает список, SAVE - карточку
// создания/редактирования. Проверки гейтят только отрисовку: границей
// безопасности остаётся backend, который проверяет права на каждом запросе.
const (
	CapHomeView = "HOME_VIEW"

	CapCustomerView     = "CUSTOMER_VIEW"
	CapCustomerSave     = "CUSTOMER_SAVE"
	CapEmployeeView     = "EMPLOYEE_VIEW"
	CapEmployeeSave     = "EMPLOYEE_SAVE"
	CapSupplierView     = "SUPPLIER_VIEW"
	CapSupplierSave     = "SUPPLIER_SAVE"
	CapCarPartView      = "CAR_PART_VIEW"
	CapCarPartSave      = "CAR_PART_SAVE"
	CapServiceView      = "SERVICE_VIEW"
	CapServiceSave      = "SERVICE_SAVE"
	CapServiceOrderView = "SERVICE_ORDER_VIEW"
	CapServiceOrderSave = "SERVICE_ORDER_SAVE"
	CapUserView         = "USER_VIEW"
	CapUserSave         = "USER_SAVE"
	CapRoleView         = "ROLE_VIEW"
	CapRoleSave         = "ROLE_SAVE"
	CapPermissionView   = "PERMISSION_VIEW"
	CapPermissionSave   = "PERMISSION_SAVE"
)

// Entry - пункт бокового меню.
type Entry struct {
	Label string
	Icon  string
	Route string

	// ViewCapability открывает список, SaveCapability - карточку.
	ViewCapability string
	SaveCapability string
}

// fixedEntries - полный упорядоченный список пунктов меню.
// Видимость каждого решает набор прав текущей сессии.
var fixedEntries = []Entry{
	{Label: "Home", Icon: "home", Route: "/", ViewCapability: CapHomeView, SaveCapability: CapHomeView},
	{Label: "Customers", Icon: "people", Route: "/customers", ViewCapability: CapCustomerView, SaveCapability: CapCustomerSave},
	{Label: "Employees", Icon: "badge", Route: "/employees", ViewCapability: CapEmployeeView, SaveCapability: CapEmployeeSave},
	{Label: "Suppliers", Icon: "local_shipping", Route: "/suppliers", ViewCapability: CapSupplierView, SaveCapability: CapSupplierSave},
	{Label: "Car Parts", Icon: "settings", Route: "/car-parts", ViewCapability: CapCarPartView, SaveCapability: CapCarPartSave},
	{Label: "Services", Icon: "build", Route: "/services", ViewCapability: CapServiceView, SaveCapability: CapServiceSave},
	{Label: "Service Orders", Icon: "car_repair", Route: "/service-orders", ViewCapability: CapServiceOrderView, SaveCapability: CapServiceOrderSave},
	{Label: "Users", Icon: "person", Route: "/users", ViewCapability: CapUserView, SaveCapability: CapUserSave},
	{Label: "Roles", Icon: "admin_panel_settings", Route: "/roles", ViewCapability: CapRoleView, SaveCapability: CapRoleSave},
	{Label: "Permissions", Icon: "key", Route: "/permissions", ViewCapability: CapPermissionView, SaveCapability: CapPermissionSave},
}

// Authorizer - срез сессии, нужный оболочке.
type Authorizer interface {
	HasCapability(name string) bool
	Invalidate(ctx context.Context)
}

// Shell - навигационная оболочка: считает достижимые экраны из текущего
// набора прав. Ничего не кэширует - после логина, логаута или обновления
// прав следующий вызов уже видит новый набор.
type Shell struct {
	session Authorizer
}

// New создает оболочку поверх сессии.
func New(session Authorizer) *Shell {
	return &Shell{session: session}
}

// Entries возвращает полный фиксированный список пунктов.
func (s *Shell) Entries() []Entry {
	entries := make([]Entry, len(fixedEntries))
	copy(entries, fixedEntries)
	return entries
}

// VisibleEntries возвращает пункты, открытые текущему набору прав,
// с сохранением порядка.
func (s *Shell) VisibleEntries() []Entry {
	return lo.Filter(s.Entries(), func(e Entry, _ int) bool {
		return s.session.HasCapability(e.ViewCapability)
	})
}

// Resolve проверяет достижимость маршрута. Список требует VIEW-права,
// карточка ({route}/detail/{uuid}) - парного SAVE-права. Недоступный или
// неизвестный маршрут уводит на "/", а без HOME_VIEW не маршрутизируется
// ничего - возвращается пустая строка.
func (s *Shell) Resolve(path string) string {
	if entry, isDetail, ok := matchRoute(path); ok {
		capability := entry.ViewCapability
		if isDetail {
			capability = entry.SaveCapability
		}
		if s.session.HasCapability(capability) {
			return path
		}
	}
	if s.session.HasCapability(CapHomeView) {
		return "/"
	}
	return ""
}

// Guard обрабатывает ошибку шлюза на уровне оболочки: ответ 401 рушит
// сессию, и до повторного входа не выполняется ни один вызов. Возвращает
// true, если требуется повторная аутентификация.
func (s *Shell) Guard(ctx context.Context, err error) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.session.Invalidate(ctx)
		return true
	}
	return false
}

// matchRoute находит пункт меню для пути и признак карточки.
func matchRoute(path string) (Entry, bool, bool) {
	for _, entry := range fixedEntries {
		if path == entry.Route {
			return entry, false, true
		}
		if entry.Route != "/" && strings.HasPrefix(path, entry.Route+"/detail/") {
			return entry, true, true
		}
	}
	return Entry{}, false, false
}
