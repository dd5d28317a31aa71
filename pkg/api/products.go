package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/samvad-hq/storefront-client/internal/domain"
)

type ProductsAPI struct {
	c *Client
}

func productPath(id int64) string { return "/products/" + strconv.FormatInt(id, 10) }

func (p *ProductsAPI) GetAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := p.c.Do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ProductsAPI) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	var out domain.Product
	if err := p.c.Do(ctx, http.MethodGet, productPath(id), nil, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (p *ProductsAPI) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := p.c.Do(ctx, http.MethodPost, "/products", product, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (p *ProductsAPI) Update(ctx context.Context, id int64, product domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := p.c.Do(ctx, http.MethodPut, productPath(id), product, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

// Delete removes a product. An empty response body yields a zero Message.
func (p *ProductsAPI) Delete(ctx context.Context, id int64) (domain.Message, error) {
	var out domain.Message
	if err := p.c.Do(ctx, http.MethodDelete, productPath(id), nil, &out); err != nil {
		return domain.Message{}, err
	}
	return out, nil
}
