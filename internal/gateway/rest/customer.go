package rest

import (
	"context"

	"github.com/frontandrew/workshop/internal/domain"
)

// CustomerGateway - REST шлюз клиентов.
type CustomerGateway struct {
	resource[domain.Customer, domain.CustomerDTO]
}

// NewCustomerGateway создает шлюз клиентов.
func NewCustomerGateway(client *Client) *CustomerGateway {
	return &CustomerGateway{newResource[domain.Customer, domain.CustomerDTO](client, "/customers")}
}

// CustomerCarGateway - REST шлюз автомобилей клиентов.
type CustomerCarGateway struct {
	resource[domain.CustomerCar, domain.CustomerCarDTO]
}

// NewCustomerCarGateway создает шлюз автомобилей.
func NewCustomerCarGateway(client *Client) *CustomerCarGateway {
	g := &CustomerCarGateway{newResource[domain.CustomerCar, domain.CustomerCarDTO](client, "/customer-cars")}
	// Backend отдаёт полный справочник машин по корневому пути, без /list.
	g.listPath = "/customer-cars"
	return g
}

// ByCustomer возвращает машины одного клиента - варианты выбора в форме
// заказ-наряда строго следуют выбранному клиенту.
func (g *CustomerCarGateway) ByCustomer(ctx context.Context, customerUUID string) ([]domain.CustomerCar, error) {
	cars, err := g.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]domain.CustomerCar, 0, len(cars))
	for _, car := range cars {
		if car.Customer != nil && car.Customer.UUID == customerUUID {
			owned = append(owned, car)
		}
	}
	return owned, nil
}
