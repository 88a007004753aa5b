package cnapsdk

import (
	"context"
	"net/http"
)

// CreatePayment registers a payment method for a research group.
// Requires: staff scope
func (s *Session) CreatePayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/v1/payments", in)
	if err != nil {
		return nil, err
	}

	var p Payment
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPayments returns every payment with its budget.
// Requires: staff scope
func (s *Session) ListPayments(ctx context.Context) ([]Payment, error) {
	return listJSON[Payment](ctx, s, "/v1/payments")
}

// GetPayment returns one payment with its budget.
// Requires: staff scope
func (s *Session) GetPayment(ctx context.Context, id string) (*Payment, error) {
	return getJSON[Payment](ctx, s, "/v1/payments/"+escape(id))
}

// UpdatePayment replaces a payment's fields. The budget is not touched.
// Requires: staff scope
func (s *Session) UpdatePayment(ctx context.Context, id string, in PaymentInput) (*Payment, error) {
	resp, err := s.doJSON(ctx, http.MethodPut, "/v1/payments/"+escape(id), in)
	if err != nil {
		return nil, err
	}

	var p Payment
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePayment removes a payment.
// Requires: staff scope
func (s *Session) DeletePayment(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/payments/"+escape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
