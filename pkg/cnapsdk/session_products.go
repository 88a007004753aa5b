package cnapsdk

import (
	"context"
	"net/http"
)

// CreateProduct adds an orderable pipeline.
// Requires: staff scope
func (s *Session) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/v1/products", in)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns every product.
// Requires: staff scope
func (s *Session) ListProducts(ctx context.Context) ([]Product, error) {
	return listJSON[Product](ctx, s, "/v1/products")
}

// GetProduct returns one product.
// Requires: staff scope
func (s *Session) GetProduct(ctx context.Context, id string) (*Product, error) {
	return getJSON[Product](ctx, s, "/v1/products/"+escape(id))
}

// UpdateProduct replaces a product's fields.
// Requires: staff scope
func (s *Session) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	resp, err := s.doJSON(ctx, http.MethodPut, "/v1/products/"+escape(id), in)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a product.
// Requires: staff scope
func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/products/"+escape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
