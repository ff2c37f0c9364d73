package editor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/workshop/internal/apitest"
	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway/rest"
	"github.com/frontandrew/workshop/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type editorFixture struct {
	srv    *apitest.Server
	editor *Editor

	customer      domain.Customer
	otherCustomer domain.Customer
	employee      domain.Employee
	service       domain.Service
	carPart       domain.CarPart
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	client := rest.NewClient(srv.URL(), 5*time.Second, logger.NewNoop())
	client.SetTokenSource(staticToken(srv.Token))

	f := &editorFixture{
		srv: srv,
		editor: New(
			rest.NewServiceOrderGateway(client),
			rest.NewServiceLineGateway(client),
			rest.NewCarPartLineGateway(client),
			logger.NewNoop(),
		),
	}
	f.customer = srv.SeedCustomer(domain.Customer{
		Name:  "Patrick O'Brien",
		Email: "patrick@example.com",
		Cars: []domain.CustomerCar{
			{Make: "Skoda", Model: "Octavia", RegistrationNumber: "201-D-4567"},
			{Make: "Nissan", Model: "Qashqai", RegistrationNumber: "182-D-8910"},
		},
	})
	f.otherCustomer = srv.SeedCustomer(domain.Customer{
		Name:  "Nora Lynch",
		Email: "nora@example.com",
		Cars: []domain.CustomerCar{
			{Make: "Opel", Model: "Astra", RegistrationNumber: "161-D-3003"},
		},
	})
	f.employee = srv.SeedEmployee(domain.Employee{Name: "Liam Walsh", Email: "liam@workshop.local"})
	f.service = srv.SeedService(domain.Service{Name: "Brake pad replacement", Amount: 120, VatRate: 23})
	f.carPart = srv.SeedCarPart(domain.CarPart{Name: "Brake pad set", SellingPrice: 45, VatRate: 23, StockQuantity: 10})
	return f
}

// fillHeader заполняет валидную шапку через действия формы.
func (f *editorFixture) fillHeader(t *testing.T) {
	t.Helper()
	f.editor.SelectCustomer(&f.customer)
	require.NoError(t, f.editor.SelectCar(f.customer.Cars[0].UUID))
	f.editor.SelectEmployee(f.employee.UUID)
	f.editor.SetStatus(domain.StatusSchedule)
	f.editor.SetWorkRequired("Front brakes grinding")
	f.editor.SetObservations("Customer waiting on site")
}

// persistHeader доводит редактор до состояния HeaderPersisted.
func (f *editorFixture) persistHeader(t *testing.T) *domain.ServiceOrder {
	t.Helper()
	f.fillHeader(t)
	order, err := f.editor.SaveHeader(context.Background())
	require.NoError(t, err)
	return order
}

// TestEditor_Open тестирует открытие редактора
func TestEditor_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("адрес create начинает новый заказ", func(t *testing.T) {
		f := newEditorFixture(t)

		require.NoError(t, f.editor.Open(ctx, CreateUUID))

		assert.Equal(t, StateEmpty, f.editor.State())
		assert.Equal(t, CreateUUID, f.editor.UUID())
		assert.Nil(t, f.editor.Order())
		assert.False(t, f.editor.CanEditLines())
	})

	t.Run("существующий uuid загружает агрегат", func(t *testing.T) {
		f := newEditorFixture(t)
		persisted := f.persistHeader(t)
		require.NoError(t, f.editor.Open(ctx, CreateUUID))

		require.NoError(t, f.editor.Open(ctx, persisted.UUID))

		assert.Equal(t, StateHeaderPersisted, f.editor.State())
		assert.Equal(t, persisted.UUID, f.editor.UUID())

		header := f.editor.Header()
		assert.Equal(t, f.customer.UUID, header.CustomerUUID)
		assert.Equal(t, f.customer.Cars[0].UUID, header.CustomerCarUUID)
		assert.Equal(t, f.employee.UUID, header.EmployeeUUID)
	})

	t.Run("неизвестный uuid - модалка с ошибкой загрузки", func(t *testing.T) {
		f := newEditorFixture(t)

		err := f.editor.Open(ctx, "missing-uuid")

		var failure *Failure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "Error displaying service order data", failure.Title)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// TestEditor_SaveHeader_Create тестирует переход Empty -> HeaderPersisted
func TestEditor_SaveHeader_Create(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.fillHeader(t)
	require.Equal(t, StateEmpty, f.editor.State())

	order, err := f.editor.SaveHeader(ctx)
	require.NoError(t, err)

	assert.Equal(t, StateHeaderPersisted, f.editor.State())
	assert.NotEmpty(t, order.UUID)
	assert.NotEqual(t, CreateUUID, order.UUID)
	assert.Equal(t, order.UUID, f.editor.UUID())
	assert.True(t, f.editor.CanEditLines())
}

// TestEditor_SaveHeader_Invalid тестирует, что невалидная шапка
// не доходит до сервера
func TestEditor_SaveHeader_Invalid(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.editor.SelectCustomer(&f.customer)
	// Машина, исполнитель и статус не заполнены.

	_, err := f.editor.SaveHeader(ctx)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customerCarUuid")
	assert.Contains(t, validationErr.Fields, "employeeUuid")
	assert.Contains(t, validationErr.Fields, "status")
	assert.Equal(t, StateEmpty, f.editor.State())
}

// TestEditor_SaveHeader_Forbidden тестирует отказ сервера при создании:
// редактор остаётся в Empty, пользователь видит модалку с причиной
func TestEditor_SaveHeader_Forbidden(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.fillHeader(t)
	f.srv.FailNext(http.StatusForbidden, "access denied")

	_, err := f.editor.SaveHeader(ctx)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Error adding service order", failure.Title)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, StateEmpty, f.editor.State())
	assert.Equal(t, CreateUUID, f.editor.UUID())
	// Введённая шапка не теряется - пользователь повторит сохранение.
	assert.Equal(t, f.customer.UUID, f.editor.Header().CustomerUUID)
}

// TestEditor_SaveHeader_Update тестирует обновление сохранённой шапки
func TestEditor_SaveHeader_Update(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	persisted := f.persistHeader(t)

	f.editor.SetStatus(domain.StatusInProgress)
	f.editor.SetObservations("Parts arrived")

	order, err := f.editor.SaveHeader(ctx)
	require.NoError(t, err)

	assert.Equal(t, persisted.UUID, order.UUID)
	assert.Equal(t, domain.StatusInProgress, order.Status)
	assert.Equal(t, "Parts arrived", order.Observations)
}

// TestEditor_CustomerSwitch тестирует сброс машины при смене клиента
func TestEditor_CustomerSwitch(t *testing.T) {
	f := newEditorFixture(t)

	f.editor.SelectCustomer(&f.customer)
	require.NoError(t, f.editor.SelectCar(f.customer.Cars[0].UUID))

	t.Run("повторный выбор того же клиента машину не трогает", func(t *testing.T) {
		f.editor.SelectCustomer(&f.customer)
		assert.Equal(t, f.customer.Cars[0].UUID, f.editor.Header().CustomerCarUUID)
	})

	t.Run("смена клиента сбрасывает машину и варианты", func(t *testing.T) {
		f.editor.SelectCustomer(&f.otherCustomer)

		header := f.editor.Header()
		assert.Equal(t, f.otherCustomer.UUID, header.CustomerUUID)
		assert.Empty(t, header.CustomerCarUUID)
		assert.Equal(t, f.otherCustomer.Cars, f.editor.CarOptions())
	})

	t.Run("машина чужого клиента отклоняется", func(t *testing.T) {
		err := f.editor.SelectCar(f.customer.Cars[0].UUID)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "customerCarUuid")
	})
}

// TestEditor_AddLine_EmptyRejected тестирует отклонение строки до
// сохранения шапки - без единого сетевого вызова
func TestEditor_AddLine_EmptyRejected(t *testing.T) {
	requests := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(backend.Close)

	client := rest.NewClient(backend.URL, 5*time.Second, logger.NewNoop())
	ed := New(
		rest.NewServiceOrderGateway(client),
		rest.NewServiceLineGateway(client),
		rest.NewCarPartLineGateway(client),
		logger.NewNoop(),
	)
	ctx := context.Background()

	ed.SelectService(&domain.Service{UUID: "s-1", Amount: 120})
	_, err := ed.AddServiceLine(ctx)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Error adding services", failure.Title)
	assert.ErrorIs(t, err, domain.ErrNoPersistedOrder)

	ed.SelectCarPart(&domain.CarPart{UUID: "p-1", SellingPrice: 45})
	_, err = ed.AddPartLine(ctx)
	assert.ErrorIs(t, err, domain.ErrNoPersistedOrder)

	assert.Zero(t, requests)
}

// TestEditor_AddServiceLine тестирует добавление строки работы
func TestEditor_AddServiceLine(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.persistHeader(t)

	f.editor.SelectService(&f.service)
	form := f.editor.ServiceForm()
	assert.Equal(t, f.service.UUID, form.ServiceUUID)
	assert.Equal(t, float64(1), form.Quantity)
	assert.Equal(t, f.service.Amount, form.Amount)

	f.editor.SetServiceLine(2, 110)

	order, err := f.editor.AddServiceLine(ctx)
	require.NoError(t, err)

	require.Len(t, order.ServiceLines, 1)
	line := order.ServiceLines[0]
	assert.NotZero(t, line.ID)
	assert.Equal(t, f.service.UUID, line.Service.UUID)
	assert.Equal(t, float64(2), line.Quantity)
	assert.Equal(t, float64(110), line.Amount)

	// Форма после добавления очищается.
	assert.Empty(t, f.editor.ServiceForm().ServiceUUID)
}

// TestEditor_AddPartLine тестирует добавление строки запчасти;
// складом занимается сервер
func TestEditor_AddPartLine(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.persistHeader(t)

	f.editor.SelectCarPart(&f.carPart)
	f.editor.SetPartLine(3, f.carPart.SellingPrice)

	order, err := f.editor.AddPartLine(ctx)
	require.NoError(t, err)

	require.Len(t, order.CarPartLines, 1)
	assert.Equal(t, f.carPart.UUID, order.CarPartLines[0].CarPart.UUID)
	// Остаток списал сервер, клиент его не пересчитывал.
	assert.Equal(t, float64(7), order.CarPartLines[0].CarPart.StockQuantity)
}

// TestEditor_AddServiceLine_ServerError тестирует, что неудачное
// добавление не меняет агрегат
func TestEditor_AddServiceLine_ServerError(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.persistHeader(t)
	f.editor.SelectService(&f.service)
	f.srv.FailNext(http.StatusInternalServerError, "boom")

	_, err := f.editor.AddServiceLine(ctx)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Error adding services", failure.Title)

	var requestErr *domain.RequestError
	assert.True(t, errors.As(err, &requestErr))
	assert.Empty(t, f.editor.Order().ServiceLines)
}

// TestEditor_RemoveServiceLine тестирует удаление строки по числовому id
func TestEditor_RemoveServiceLine(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.persistHeader(t)

	f.editor.SelectService(&f.service)
	order, err := f.editor.AddServiceLine(ctx)
	require.NoError(t, err)
	f.editor.SelectService(&f.service)
	order, err = f.editor.AddServiceLine(ctx)
	require.NoError(t, err)
	require.Len(t, order.ServiceLines, 2)

	removed := order.ServiceLines[0].ID
	order, err = f.editor.RemoveServiceLine(ctx, removed)
	require.NoError(t, err)

	require.Len(t, order.ServiceLines, 1)
	assert.NotEqual(t, removed, order.ServiceLines[0].ID)
}

// TestEditor_RemovePartLine_NotFound тестирует модалку при удалении
// несуществующей строки запчасти
func TestEditor_RemovePartLine_NotFound(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()

	f.persistHeader(t)

	_, err := f.editor.RemovePartLine(ctx, 9999)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Error deleting Car-Parts", failure.Title)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
