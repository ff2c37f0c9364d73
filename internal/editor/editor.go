package editor

import (
	"context"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/frontandrew/workshop/internal/pkg/logger"
)

// State - состояние сессии редактирования заказ-наряда.
type State int

const (
	// StateEmpty - шапка ещё не сохранена, у заказа нет серверного uuid.
	// Формы строк выключены: строке не к чему привязаться.
	StateEmpty State = iota

	// StateHeaderPersisted - шапка сохранена, строки можно добавлять.
	StateHeaderPersisted
)

// CreateUUID - значение адреса экрана для нового, ещё не сохранённого заказа.
const CreateUUID = "create"

// Заголовки модальных диалогов при ошибках.
const (
	titleOpenFailed    = "Error displaying service order data"
	titleCreateFailed  = "Error adding service order"
	titleUpdateFailed  = "Error changing service order"
	titleAddService    = "Error adding services"
	titleAddCarPart    = "Error adding car parts"
	titleDeleteService = "Error deleting Service"
	titleDeleteCarPart = "Error deleting Car-Parts"
	titleRefreshFailed = "Error getting service order by UUID"
)

// Failure - ошибка для показа пользователю: заголовок модального окна
// плюс исходная причина. Ошибки редактора всегда доходят до пользователя,
// молча в лог они не уходят.
type Failure struct {
	Title string
	Err   error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Title
	}
	return f.Title + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(title string, err error) *Failure {
	return &Failure{Title: title, Err: err}
}

// Editor - сессия редактирования одного заказ-наряда.
//
// Агрегат после каждой мутации перечитывается целиком: налоги и прочие
// производные поля считает сервер, и повторный Get - единственная точка
// синхронизации с его истиной. Неудачный вызов не меняет ни состояние,
// ни агрегат - пользователь правит ввод и повторяет.
//
// Экземпляр обслуживает одного пользователя: действия идут строго
// последовательно (экран блокируется на время запроса), поэтому
// внутренней синхронизации здесь нет. Закрытие экрана - просто потеря
// ссылки, несохранённый ввод не переживает сессию.
type Editor struct {
	orders       gateway.ServiceOrderGateway
	serviceLines gateway.ServiceLineGateway
	partLines    gateway.CarPartLineGateway
	logger       logger.Logger

	state  State
	order  *domain.ServiceOrder
	header domain.ServiceOrderDTO

	// Варианты выбора машины - строгая функция выбранного клиента.
	carOptions []domain.CustomerCar

	serviceForm domain.ServiceLineDTO
	partForm    domain.CarPartLineDTO
}

// New создает редактор в состоянии Empty.
func New(
	orders gateway.ServiceOrderGateway,
	serviceLines gateway.ServiceLineGateway,
	partLines gateway.CarPartLineGateway,
	log logger.Logger,
) *Editor {
	return &Editor{
		orders:       orders,
		serviceLines: serviceLines,
		partLines:    partLines,
		logger:       log,
	}
}

// Open загружает заказ по uuid либо начинает новый при uuid = "create".
func (e *Editor) Open(ctx context.Context, uuid string) error {
	if uuid == "" || uuid == CreateUUID {
		e.reset()
		return nil
	}

	order, err := e.orders.Get(ctx, uuid)
	if err != nil {
		return fail(titleOpenFailed, err)
	}
	e.adopt(order)
	return nil
}

// State возвращает текущее состояние редактора.
func (e *Editor) State() State { return e.state }

// UUID возвращает серверный uuid заказа, либо "create" до первого сохранения.
func (e *Editor) UUID() string {
	if e.order == nil {
		return CreateUUID
	}
	return e.order.UUID
}

// Order возвращает агрегат из последнего успешного ответа сервера.
func (e *Editor) Order() *domain.ServiceOrder { return e.order }

// Header возвращает текущие значения формы шапки.
func (e *Editor) Header() domain.ServiceOrderDTO { return e.header }

// CarOptions возвращает машины выбранного клиента.
func (e *Editor) CarOptions() []domain.CustomerCar { return e.carOptions }

// CanEditLines сообщает, доступны ли формы строк.
func (e *Editor) CanEditLines() bool { return e.state == StateHeaderPersisted }

// SelectCustomer выбирает клиента в шапке. Смена клиента сбрасывает
// выбранную машину: нельзя отправить машину чужого клиента. Повторный
// выбор того же клиента валидную машину не трогает.
func (e *Editor) SelectCustomer(customer *domain.Customer) {
	if customer == nil {
		e.header.CustomerUUID = ""
		e.header.CustomerCarUUID = ""
		e.carOptions = nil
		return
	}

	sameCustomer := e.header.CustomerUUID == customer.UUID
	e.header.CustomerUUID = customer.UUID
	e.carOptions = customer.Cars
	if !sameCustomer {
		e.header.CustomerCarUUID = ""
	}
}

// SelectCar выбирает машину из вариантов текущего клиента.
func (e *Editor) SelectCar(carUUID string) error {
	if carUUID == "" {
		e.header.CustomerCarUUID = ""
		return nil
	}
	for _, car := range e.carOptions {
		if car.UUID == carUUID {
			e.header.CustomerCarUUID = carUUID
			return nil
		}
	}
	return &domain.ValidationError{Fields: map[string]string{
		"customerCarUuid": "car does not belong to the selected customer",
	}}
}

// SelectEmployee выбирает исполнителя.
func (e *Editor) SelectEmployee(employeeUUID string) {
	e.header.EmployeeUUID = employeeUUID
}

// SetStatus выставляет статус заказа.
func (e *Editor) SetStatus(status domain.OrderStatus) {
	e.header.Status = status
}

// SetWorkRequired заполняет описание требуемых работ.
func (e *Editor) SetWorkRequired(text string) {
	e.header.WorkRequired = text
}

// SetObservations заполняет примечания.
func (e *Editor) SetObservations(text string) {
	e.header.Observations = text
}

// SaveHeader сохраняет шапку: создание в состоянии Empty, обновление
// после. Успешное создание переводит редактор в HeaderPersisted - с этого
// момента к заказу можно прикреплять строки.
func (e *Editor) SaveHeader(ctx context.Context) (*domain.ServiceOrder, error) {
	if err := e.header.Validate(); err != nil {
		return nil, err
	}

	if e.state == StateEmpty {
		order, err := e.orders.Create(ctx, e.header)
		if err != nil {
			return nil, fail(titleCreateFailed, err)
		}
		e.logger.Info("Service order created", map[string]interface{}{
			"uuid": order.UUID,
		})
		e.adopt(order)
		return order, nil
	}

	order, err := e.orders.Update(ctx, e.order.UUID, e.header)
	if err != nil {
		return nil, fail(titleUpdateFailed, err)
	}
	e.logger.Info("Service order updated", map[string]interface{}{
		"uuid": order.UUID,
	})
	e.adopt(order)
	return order, nil
}

// SelectService подставляет в форму строки цену работы по прайсу
// и количество 1. Цену можно переопределить до добавления.
func (e *Editor) SelectService(service *domain.Service) {
	if service == nil {
		e.serviceForm = domain.ServiceLineDTO{}
		return
	}
	e.serviceForm = domain.ServiceLineDTO{
		ServiceUUID: service.UUID,
		Quantity:    1,
		Amount:      service.Amount,
	}
}

// SetServiceLine правит количество и цену в форме строки работы.
func (e *Editor) SetServiceLine(quantity, amount float64) {
	e.serviceForm.Quantity = quantity
	e.serviceForm.Amount = amount
}

// ServiceForm возвращает текущие значения формы строки работы.
func (e *Editor) ServiceForm() domain.ServiceLineDTO { return e.serviceForm }

// AddServiceLine добавляет строку работы и перечитывает агрегат.
// В состоянии Empty операция отклоняется без сетевого вызова: у строки
// не было бы валидной ссылки на заказ.
func (e *Editor) AddServiceLine(ctx context.Context) (*domain.ServiceOrder, error) {
	if e.state != StateHeaderPersisted {
		return nil, fail(titleAddService, domain.ErrNoPersistedOrder)
	}

	dto := e.serviceForm
	dto.ServiceOrderUUID = e.order.UUID
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := e.serviceLines.Create(ctx, dto); err != nil {
		return nil, fail(titleAddService, err)
	}
	e.serviceForm = domain.ServiceLineDTO{}
	return e.refresh(ctx)
}

// SelectCarPart подставляет в форму строки отпускную цену запчасти
// и количество 1.
func (e *Editor) SelectCarPart(part *domain.CarPart) {
	if part == nil {
		e.partForm = domain.CarPartLineDTO{}
		return
	}
	e.partForm = domain.CarPartLineDTO{
		CarPartUUID: part.UUID,
		Quantity:    1,
		Amount:      part.SellingPrice,
	}
}

// SetPartLine правит количество и цену в форме строки запчасти.
func (e *Editor) SetPartLine(quantity, amount float64) {
	e.partForm.Quantity = quantity
	e.partForm.Amount = amount
}

// PartForm возвращает текущие значения формы строки запчасти.
func (e *Editor) PartForm() domain.CarPartLineDTO { return e.partForm }

// AddPartLine добавляет строку запчасти и перечитывает агрегат.
// Списание склада выполняет сервер при проведении строки.
func (e *Editor) AddPartLine(ctx context.Context) (*domain.ServiceOrder, error) {
	if e.state != StateHeaderPersisted {
		return nil, fail(titleAddCarPart, domain.ErrNoPersistedOrder)
	}

	dto := e.partForm
	dto.ServiceOrderUUID = e.order.UUID
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := e.partLines.Create(ctx, dto); err != nil {
		return nil, fail(titleAddCarPart, err)
	}
	e.partForm = domain.CarPartLineDTO{}
	return e.refresh(ctx)
}

// RemoveServiceLine удаляет строку работы по числовому id и перечитывает
// агрегат. Правка строки моделируется как удаление и повторное добавление.
func (e *Editor) RemoveServiceLine(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	if e.state != StateHeaderPersisted {
		return nil, fail(titleDeleteService, domain.ErrNoPersistedOrder)
	}
	if err := e.serviceLines.Delete(ctx, id); err != nil {
		return nil, fail(titleDeleteService, err)
	}
	return e.refresh(ctx)
}

// RemovePartLine удаляет строку запчасти по числовому id и перечитывает
// агрегат.
func (e *Editor) RemovePartLine(ctx context.Context, id int64) (*domain.ServiceOrder, error) {
	if e.state != StateHeaderPersisted {
		return nil, fail(titleDeleteCarPart, domain.ErrNoPersistedOrder)
	}
	if err := e.partLines.Delete(ctx, id); err != nil {
		return nil, fail(titleDeleteCarPart, err)
	}
	return e.refresh(ctx)
}

// refresh - обязательная перечитка агрегата после успешной мутации строк.
// При ошибке агрегат остаётся прежним; строка при этом уже создана или
// удалена на сервере, поэтому ошибка обязательно показывается.
func (e *Editor) refresh(ctx context.Context) (*domain.ServiceOrder, error) {
	order, err := e.orders.Get(ctx, e.order.UUID)
	if err != nil {
		return nil, fail(titleRefreshFailed, err)
	}
	e.adopt(order)
	return order, nil
}

// adopt принимает серверный агрегат как текущее состояние редактора.
func (e *Editor) adopt(order *domain.ServiceOrder) {
	e.state = StateHeaderPersisted
	e.order = order

	e.header = domain.ServiceOrderDTO{
		Status:       order.Status,
		WorkRequired: order.WorkRequired,
		Observations: order.Observations,
	}
	if order.Customer != nil {
		e.header.CustomerUUID = order.Customer.UUID
		e.carOptions = order.Customer.Cars
	}
	if order.CustomerCar != nil {
		e.header.CustomerCarUUID = order.CustomerCar.UUID
	}
	if order.Employee != nil {
		e.header.EmployeeUUID = order.Employee.UUID
	}
}

// reset возвращает редактор к пустой форме нового заказа.
func (e *Editor) reset() {
	e.state = StateEmpty
	e.order = nil
	e.header = domain.ServiceOrderDTO{}
	e.carOptions = nil
	e.serviceForm = domain.ServiceLineDTO{}
	e.partForm = domain.CarPartLineDTO{}
}
