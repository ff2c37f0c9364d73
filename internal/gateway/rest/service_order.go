package rest

import (
	"context"
	"strconv"

	"github.com/frontandrew/workshop/internal/domain"
)

// ServiceOrderGateway - REST шлюз заказ-нарядов (агрегат целиком:
// шапка плюс обе коллекции строк в каждом ответе Get).
type ServiceOrderGateway struct {
	resource[domain.ServiceOrder, domain.ServiceOrderDTO]
}

// NewServiceOrderGateway создает шлюз заказ-нарядов.
func NewServiceOrderGateway(client *Client) *ServiceOrderGateway {
	return &ServiceOrderGateway{newResource[domain.ServiceOrder, domain.ServiceOrderDTO](client, "/service-orders")}
}

// ServiceLineGateway - REST шлюз строк работ.
// Строки живут только внутри своего заказ-наряда и адресуются числовым id.
type ServiceLineGateway struct {
	client *Client
}

func NewServiceLineGateway(client *Client) *ServiceLineGateway {
	return &ServiceLineGateway{client: client}
}

const serviceLinesPath = "/service-order-services"

func (g *ServiceLineGateway) Get(ctx context.Context, id int64) (*domain.ServiceOrderLine, error) {
	var line domain.ServiceOrderLine
	if err := g.client.get(ctx, serviceLinesPath+"/"+strconv.FormatInt(id, 10), nil, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *ServiceLineGateway) Create(ctx context.Context, dto domain.ServiceLineDTO) (*domain.ServiceOrderLine, error) {
	var line domain.ServiceOrderLine
	if err := g.client.post(ctx, serviceLinesPath, dto, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *ServiceLineGateway) Update(ctx context.Context, id int64, dto domain.ServiceLineDTO) (*domain.ServiceOrderLine, error) {
	var line domain.ServiceOrderLine
	if err := g.client.put(ctx, serviceLinesPath+"/"+strconv.FormatInt(id, 10), dto, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *ServiceLineGateway) Delete(ctx context.Context, id int64) error {
	return g.client.delete(ctx, serviceLinesPath+"/"+strconv.FormatInt(id, 10))
}

// CarPartLineGateway - REST шлюз строк запчастей.
type CarPartLineGateway struct {
	client *Client
}

func NewCarPartLineGateway(client *Client) *CarPartLineGateway {
	return &CarPartLineGateway{client: client}
}

const partLinesPath = "/service-order-parts"

func (g *CarPartLineGateway) Get(ctx context.Context, id int64) (*domain.CarPartOrderLine, error) {
	var line domain.CarPartOrderLine
	if err := g.client.get(ctx, partLinesPath+"/"+strconv.FormatInt(id, 10), nil, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *CarPartLineGateway) Create(ctx context.Context, dto domain.CarPartLineDTO) (*domain.CarPartOrderLine, error) {
	var line domain.CarPartOrderLine
	if err := g.client.post(ctx, partLinesPath, dto, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *CarPartLineGateway) Update(ctx context.Context, id int64, dto domain.CarPartLineDTO) (*domain.CarPartOrderLine, error) {
	var line domain.CarPartOrderLine
	if err := g.client.put(ctx, partLinesPath+"/"+strconv.FormatInt(id, 10), dto, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (g *CarPartLineGateway) Delete(ctx context.Context, id int64) error {
	return g.client.delete(ctx, partLinesPath+"/"+strconv.FormatInt(id, 10))
}
