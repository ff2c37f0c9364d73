package domain

import "github.com/shopspring/decimal"

// OrderStatus представляет статус заказ-наряда.
// Граф переходов на клиенте не контролируется - любой статус можно
// выставить из формы, сервер решает сам.
type OrderStatus string

const (
	StatusSchedule   OrderStatus = "SCHEDULE"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses - все допустимые статусы в порядке показа.
var OrderStatuses = []OrderStatus{
	StatusSchedule,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Valid проверяет, что статус входит в перечисление.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusSchedule, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ServiceOrder - агрегат заказ-наряда: шапка плюс строки работ и запчастей.
// Коллекции строк принадлежат агрегату целиком и всегда берутся из
// последнего полного ответа сервера, клиент их не пересчитывает.
// Инвариант customerCar ∈ customer.cars обеспечивается фильтрацией формы,
// отдельной проверкой при загрузке клиент не занимается.
type ServiceOrder struct {
	ID            int64              `json:"id"`
	UUID          string             `json:"uuid"`
	Customer      *Customer          `json:"customer"`
	CustomerCar   *CustomerCar       `json:"customerCar"`
	Employee      *Employee          `json:"employee"`
	Status        OrderStatus        `json:"status"`
	WorkRequired  string             `json:"workRequired"`
	Observations  string             `json:"observations"`
	ServiceLines  []ServiceOrderLine `json:"serviceOrderServices"`
	CarPartLines  []CarPartOrderLine `json:"serviceOrderParts"`
	CreatedAt     int64              `json:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt"`
}

// ServiceOrderLine - строка работы внутри заказ-наряда.
// Редактирование строки моделируется как удаление и повторное добавление.
type ServiceOrderLine struct {
	ID        int64    `json:"id"`
	Service   *Service `json:"service"`
	Quantity  float64  `json:"quantity"`
	Amount    float64  `json:"amount"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// CarPartOrderLine - строка запчасти внутри заказ-наряда.
type CarPartOrderLine struct {
	ID        int64    `json:"id"`
	CarPart   *CarPart `json:"carPart"`
	Quantity  float64  `json:"quantity"`
	Amount    float64  `json:"amount"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// lineTax считает НДС строки: quantity*amount*vatRate/100, округление до цента.
// Это оптимистичный расчёт для отображения - источником истины остаётся
// сервер, и после каждой мутации агрегат перечитывается целиком.
func lineTax(quantity, amount, vatRate float64) decimal.Decimal {
	net := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(amount))
	return net.Mul(decimal.NewFromFloat(vatRate)).Div(decimal.NewFromInt(100)).Round(2)
}

func lineTotal(quantity, amount, vatRate float64) decimal.Decimal {
	net := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(amount)).Round(2)
	return lineTax(quantity, amount, vatRate).Add(net)
}

// Tax возвращает НДС строки работы.
func (l ServiceOrderLine) Tax() decimal.Decimal {
	if l.Service == nil {
		return decimal.Zero
	}
	return lineTax(l.Quantity, l.Amount, l.Service.VatRate)
}

// Total возвращает сумму строки работы с НДС.
func (l ServiceOrderLine) Total() decimal.Decimal {
	if l.Service == nil {
		return decimal.Zero
	}
	return lineTotal(l.Quantity, l.Amount, l.Service.VatRate)
}

// Tax возвращает НДС строки запчасти.
func (l CarPartOrderLine) Tax() decimal.Decimal {
	if l.CarPart == nil {
		return decimal.Zero
	}
	return lineTax(l.Quantity, l.Amount, l.CarPart.VatRate)
}

// Total возвращает сумму строки запчасти с НДС.
func (l CarPartOrderLine) Total() decimal.Decimal {
	if l.CarPart == nil {
		return decimal.Zero
	}
	return lineTotal(l.Quantity, l.Amount, l.CarPart.VatRate)
}

// GrandTotal - сумма всех строк заказ-наряда с НДС.
func (o *ServiceOrder) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.ServiceLines {
		total = total.Add(l.Total())
	}
	for _, l := range o.CarPartLines {
		total = total.Add(l.Total())
	}
	return total
}

// ServiceOrderDTO - payload создания и обновления шапки заказ-наряда.
type ServiceOrderDTO struct {
	CustomerUUID    string      `json:"customerUuid"`
	CustomerCarUUID string      `json:"customerCarUuid"`
	EmployeeUUID    string      `json:"employeeUuid"`
	Status          OrderStatus `json:"status"`
	WorkRequired    string      `json:"workRequired"`
	Observations    string      `json:"observations"`
}

// Validate проверяет поля шапки. Все поля обязательны.
func (d *ServiceOrderDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("customerUuid", d.CustomerUUID)
	errs.required("customerCarUuid", d.CustomerCarUUID)
	errs.required("employeeUuid", d.EmployeeUUID)
	errs.required("status", string(d.Status))
	errs.required("workRequired", d.WorkRequired)
	errs.required("observations", d.Observations)
	if d.Status != "" && !d.Status.Valid() {
		errs["status"] = ErrInvalidStatus.Error()
	}
	return errs.err()
}

// ServiceLineDTO - payload добавления строки работы.
// serviceOrderUuid обязателен: строка не существует без сохранённой шапки.
type ServiceLineDTO struct {
	ServiceOrderUUID string  `json:"serviceOrderUuid"`
	ServiceUUID      string  `json:"serviceUuid"`
	Quantity         float64 `json:"quantity"`
	Amount           float64 `json:"amount"`
}

// Validate проверяет поля строки работы.
func (d *ServiceLineDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("serviceUuid", d.ServiceUUID)
	errs.positive("quantity", d.Quantity)
	errs.nonNegative("amount", d.Amount)
	return errs.err()
}

// CarPartLineDTO - payload добавления строки запчасти.
type CarPartLineDTO struct {
	ServiceOrderUUID string  `json:"serviceOrderUuid"`
	CarPartUUID      string  `json:"carPartUuid"`
	Quantity         float64 `json:"quantity"`
	Amount           float64 `json:"amount"`
}

// Validate проверяет поля строки запчасти.
func (d *CarPartLineDTO) Validate() error {
	errs := fieldErrors{}
	errs.required("carPartUuid", d.CarPartUUID)
	errs.positive("quantity", d.Quantity)
	errs.nonNegative("amount", d.Amount)
	return errs.err()
}
