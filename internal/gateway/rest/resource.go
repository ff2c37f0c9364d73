package rest

import (
	"context"

	"github.com/frontandrew/workshop/internal/gateway"
)

// resource - общая REST реализация контракта gateway.Crud.
// Все справочники ходят по одной и той же схеме endpoint'ов, отличаются
// только базовый путь и типы; конкретные шлюзы ниже - тонкие обёртки.
type resource[E any, D any] struct {
	client   *Client
	path     string // /customers
	listPath string // /customers/list
}

func newResource[E any, D any](client *Client, path string) resource[E, D] {
	return resource[E, D]{
		client:   client,
		path:     path,
		listPath: path + "/list",
	}
}

func (r resource[E, D]) Search(ctx context.Context, q gateway.Query) (gateway.Page[E], error) {
	var page gateway.Page[E]
	if err := r.client.get(ctx, r.path, r.client.searchQuery(q), &page); err != nil {
		return gateway.Page[E]{}, err
	}
	return page, nil
}

func (r resource[E, D]) Get(ctx context.Context, uuid string) (*E, error) {
	var entity E
	if err := r.client.get(ctx, r.path+"/"+uuid, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r resource[E, D]) List(ctx context.Context) ([]E, error) {
	var entities []E
	if err := r.client.get(ctx, r.listPath, nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r resource[E, D]) Create(ctx context.Context, dto D) (*E, error) {
	var entity E
	if err := r.client.post(ctx, r.path, dto, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r resource[E, D]) Update(ctx context.Context, uuid string, dto D) (*E, error) {
	var entity E
	if err := r.client.put(ctx, r.path+"/"+uuid, dto, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r resource[E, D]) Delete(ctx context.Context, uuid string) error {
	return r.client.delete(ctx, r.path+"/"+uuid)
}
