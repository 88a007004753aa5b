package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
	"github.com/aussiebroadwan/cnap/pkg/httpx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// RecordsHandler serves the staff records API.
type RecordsHandler struct {
	RecordsService *service.RecordsService
}

// writeRecordError maps service errors onto API errors.
func writeRecordError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidRecord):
		cnapsdk.ErrInvalidRequest.With(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrRecordNotFound):
		cnapsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrRecordConflict):
		cnapsdk.ErrConflict.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, slog.Any("error", err))
		cnapsdk.ErrServerError.WriteError(w)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		cnapsdk.ErrInvalidRequest.With("Invalid JSON in request body").WriteError(w)
		return false
	}
	return true
}

func writeList[D, S any](w http.ResponseWriter, r *http.Request, list func(context.Context) ([]D, error), conv func(D) S, action string) {
	items, err := list(r.Context())
	if err != nil {
		writeRecordError(w, r, err, action)
		return
	}
	out := make([]S, len(items))
	for i, it := range items {
		out[i] = conv(it)
	}
	httpx.WriteJSON(w, http.StatusOK, cnapsdk.ListResponse[S]{Items: out})
}

func writeOne[D, S any](w http.ResponseWriter, r *http.Request, get func(context.Context, string) (D, error), conv func(D) S, action string) {
	item, err := get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeRecordError(w, r, err, action)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, conv(item))
}

// Products

// HandleCreateProduct handles POST /v1/products
//
//	@Summary		Create product
//	@Description	Adds an orderable pipeline. Names are unique.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		cnapsdk.ProductInput	true	"Product fields"
//	@Success		201		{object}	cnapsdk.Product
//	@Failure		400		{object}	cnapsdk.APIError	"error, error_description"
//	@Failure		409		{object}	cnapsdk.APIError	"name taken"
//	@Router			/v1/products [post].
func (h *RecordsHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in cnapsdk.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.RecordsService.CreateProduct(r.Context(), fromProductInput(in))
	if err != nil {
		writeRecordError(w, r, err, "create product")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProduct(p))
}

// HandleListProducts handles GET /v1/products
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Product]
//	@Router		/v1/products [get].
func (h *RecordsHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListProducts, toProduct, "list products")
}

// HandleGetProduct handles GET /v1/products/{id}
//
//	@Summary	Get product
//	@Tags		Products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Product ID (ULID)"
//	@Success	200	{object}	cnapsdk.Product
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/products/{id} [get].
func (h *RecordsHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetProduct, toProduct, "get product")
}

// HandleUpdateProduct handles PUT /v1/products/{id}
//
//	@Summary		Replace product
//	@Description	Replaces every editable field, including the remaining quantity.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Product ID (ULID)"
//	@Param			request	body		cnapsdk.ProductInput	true	"Product fields"
//	@Success		200		{object}	cnapsdk.Product
//	@Failure		400		{object}	cnapsdk.APIError
//	@Failure		404		{object}	cnapsdk.APIError
//	@Router			/v1/products/{id} [put].
func (h *RecordsHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in cnapsdk.ProductInput
	if !decodeBody(w, r, &in) {
		return
	}
	p := fromProductInput(in)
	p.ID = r.PathValue("id")
	p, err := h.RecordsService.UpdateProduct(r.Context(), p)
	if err != nil {
		writeRecordError(w, r, err, "update product")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProduct(p))
}

// HandleDeleteProduct handles DELETE /v1/products/{id}
//
//	@Summary	Delete product
//	@Tags		Products
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Product ID (ULID)"
//	@Success	204	"Product deleted"
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/products/{id} [delete].
func (h *RecordsHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.RecordsService.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeRecordError(w, r, err, "delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Payments

// HandleCreatePayment handles POST /v1/payments
//
//	@Summary		Create payment
//	@Description	Registers a payment method for a research group. Omit amount_cents for an open-ended payment.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		cnapsdk.PaymentInput	true	"Payment fields"
//	@Success		201		{object}	cnapsdk.Payment
//	@Failure		400		{object}	cnapsdk.APIError
//	@Failure		409		{object}	cnapsdk.APIError	"code taken"
//	@Router			/v1/payments [post].
func (h *RecordsHandler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var in cnapsdk.PaymentInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, ok := fromPaymentInput(in)
	if !ok {
		cnapsdk.ErrInvalidRequest.With("payment_date must be YYYY-MM-DD").WriteError(w)
		return
	}
	v, err := h.RecordsService.CreatePayment(r.Context(), p)
	if err != nil {
		writeRecordError(w, r, err, "create payment")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPayment(v))
}

// HandleListPayments handles GET /v1/payments
//
//	@Summary	List payments with their budgets
//	@Tags		Payments
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Payment]
//	@Router		/v1/payments [get].
func (h *RecordsHandler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListPayments, toPayment, "list payments")
}

// HandleGetPayment handles GET /v1/payments/{id}
//
//	@Summary	Get payment with its budget
//	@Tags		Payments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Payment ID (ULID)"
//	@Success	200	{object}	cnapsdk.Payment
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/payments/{id} [get].
func (h *RecordsHandler) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetPayment, toPayment, "get payment")
}

// HandleUpdatePayment handles PUT /v1/payments/{id}
//
//	@Summary		Replace payment
//	@Description	Replaces the payment fields. The running budget is kept.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Payment ID (ULID)"
//	@Param			request	body		cnapsdk.PaymentInput	true	"Payment fields"
//	@Success		200		{object}	cnapsdk.Payment
//	@Failure		400		{object}	cnapsdk.APIError
//	@Failure		404		{object}	cnapsdk.APIError
//	@Router			/v1/payments/{id} [put].
func (h *RecordsHandler) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var in cnapsdk.PaymentInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, ok := fromPaymentInput(in)
	if !ok {
		cnapsdk.ErrInvalidRequest.With("payment_date must be YYYY-MM-DD").WriteError(w)
		return
	}
	p.ID = r.PathValue("id")
	v, err := h.RecordsService.UpdatePayment(r.Context(), p)
	if err != nil {
		writeRecordError(w, r, err, "update payment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPayment(v))
}

// HandleDeletePayment handles DELETE /v1/payments/{id}
//
//	@Summary	Delete payment
//	@Tags		Payments
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Payment ID (ULID)"
//	@Success	204	"Payment deleted"
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/payments/{id} [delete].
func (h *RecordsHandler) HandleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.RecordsService.DeletePayment(r.Context(), r.PathValue("id")); err != nil {
		writeRecordError(w, r, err, "delete payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
