package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/stretchr/testify/require"
)

func rnaSeq() cnapsdk.ProductInput {
	return cnapsdk.ProductInput{
		Name:              "RNA-Seq",
		Description:       "Bulk RNA sequencing",
		Quantity:          10,
		IsQuantityLimited: true,
		WorkflowPK:        3,
		UnitCostCents:     1000,
	}
}

func ptr[T any](v T) *T { return &v }

func TestProductsCRUD(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	rec := env.do(t, http.MethodPost, "/v1/products", tok, rnaSeq())
	requireStatus(t, rec, http.StatusCreated)
	created := decode[cnapsdk.Product](t, rec)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "$10.00", created.UnitCost)

	rec = env.do(t, http.MethodGet, "/v1/products/"+created.ID, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, created, decode[cnapsdk.Product](t, rec))

	in := rnaSeq()
	in.Quantity = 4
	in.UnitCostCents = 1250
	rec = env.do(t, http.MethodPut, "/v1/products/"+created.ID, tok, in)
	requireStatus(t, rec, http.StatusOK)
	updated := decode[cnapsdk.Product](t, rec)
	require.Equal(t, int64(4), updated.Quantity)
	require.Equal(t, "$12.50", updated.UnitCost)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = env.do(t, http.MethodGet, "/v1/products", tok, nil)
	requireStatus(t, rec, http.StatusOK)
	list := decode[cnapsdk.ListResponse[cnapsdk.Product]](t, rec)
	require.Len(t, list.Items, 1)

	rec = env.do(t, http.MethodDelete, "/v1/products/"+created.ID, tok, nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, http.MethodGet, "/v1/products/"+created.ID, tok, nil)
	requireStatus(t, rec, http.StatusNotFound)
	require.Equal(t, cnapsdk.ErrorCodeNotFound, decode[cnapsdk.APIError](t, rec).Code)
}

func TestProductErrors(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	rec := env.do(t, http.MethodPost, "/v1/products", tok, rnaSeq())
	requireStatus(t, rec, http.StatusCreated)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		status int
	}{
		{"duplicate name", http.MethodPost, "/v1/products", rnaSeq(), http.StatusConflict},
		{"blank name", http.MethodPost, "/v1/products", cnapsdk.ProductInput{Name: "  "}, http.StatusBadRequest},
		{"negative quantity", http.MethodPost, "/v1/products", cnapsdk.ProductInput{Name: "ChIP", Quantity: -1}, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/v1/products", "{", http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/v1/products/" + idx.New().String(), rnaSeq(), http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/v1/products/" + idx.New().String(), nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.target, tok, tt.body)
			requireStatus(t, rec, tt.status)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestPaymentsCRUD(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)
	ctx := context.Background()

	lab := domain.ResearchGroup{ID: idx.New().String(), PIName: "Dana Okafor", PIEmail: "okafor@lab.org"}
	require.NoError(t, env.store.ResearchGroups().CreateResearchGroup(ctx, lab))

	in := cnapsdk.PaymentInput{
		PaymentType:     "PO",
		Number:          "4500012345",
		PaymentDate:     ptr("2026-01-31"),
		ResearchGroupID: lab.ID,
		Code:            "PO-100",
		AmountCents:     ptr(int64(10000)),
	}
	rec := env.do(t, http.MethodPost, "/v1/payments", tok, in)
	requireStatus(t, rec, http.StatusCreated)
	created := decode[cnapsdk.Payment](t, rec)
	require.Equal(t, "2026-01-31", *created.PaymentDate)
	require.Equal(t, int64(10000), *created.AmountCents)
	require.Nil(t, created.Budget)

	// A charge opens the budget, which then shows on reads.
	_, err := env.store.Budgets().EnsureBudget(ctx, domain.Budget{ID: idx.New().String(), PaymentID: created.ID})
	require.NoError(t, err)
	ok, err := env.store.Budgets().ChargeBudget(ctx, created.ID, 2500, 10000)
	require.NoError(t, err)
	require.True(t, ok)

	rec = env.do(t, http.MethodGet, "/v1/payments/"+created.ID, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	got := decode[cnapsdk.Payment](t, rec)
	require.NotNil(t, got.Budget)
	require.Equal(t, int64(2500), got.Budget.CurrentSumCents)
	require.Equal(t, "$25.00", got.Budget.CurrentSum)

	// Clearing the amount makes the payment open-ended.
	in.AmountCents = nil
	rec = env.do(t, http.MethodPut, "/v1/payments/"+created.ID, tok, in)
	requireStatus(t, rec, http.StatusOK)
	require.Nil(t, decode[cnapsdk.Payment](t, rec).AmountCents)

	rec = env.do(t, http.MethodGet, "/v1/payments", tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[cnapsdk.ListResponse[cnapsdk.Payment]](t, rec).Items, 1)

	rec = env.do(t, http.MethodDelete, "/v1/payments/"+created.ID, tok, nil)
	requireStatus(t, rec, http.StatusNoContent)
}

func TestPaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)

	tests := []struct {
		name string
		in   cnapsdk.PaymentInput
	}{
		{"unknown type", cnapsdk.PaymentInput{PaymentType: "XX", ResearchGroupID: idx.New().String()}},
		{"missing group", cnapsdk.PaymentInput{PaymentType: "CC"}},
		{"unknown group", cnapsdk.PaymentInput{PaymentType: "CC", ResearchGroupID: idx.New().String()}},
		{"bad date", cnapsdk.PaymentInput{PaymentType: "CC", PaymentDate: ptr("31/01/2026")}},
		{"negative amount", cnapsdk.PaymentInput{PaymentType: "JN", AmountCents: ptr(int64(-1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/payments", tok, tt.in)
			requireStatus(t, rec, http.StatusBadRequest)
			require.Equal(t, cnapsdk.ErrorCodeInvalidRequest, decode[cnapsdk.APIError](t, rec).Code)
		})
	}
}

func TestReadOnlyRecords(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)
	ctx := context.Background()

	org := domain.Organization{ID: idx.New().String(), Name: "Harvard University"}
	require.NoError(t, env.store.Organizations().CreateOrganization(ctx, org))
	lab := domain.ResearchGroup{ID: idx.New().String(), PIName: "Dana Okafor", PIEmail: "okafor@lab.org", OrganizationID: org.ID}
	require.NoError(t, env.store.ResearchGroups().CreateResearchGroup(ctx, lab))
	u := domain.User{ID: idx.New().String(), FirstName: "Sam", LastName: "Reyes", Email: "reyes@lab.org"}
	require.NoError(t, env.store.Users().CreateUser(ctx, u))
	m := domain.CnapUser{ID: idx.New().String(), UserID: u.ID, ResearchGroupID: lab.ID}
	require.NoError(t, env.store.Members().CreateMember(ctx, m))

	rec := env.do(t, http.MethodGet, "/v1/organizations", tok, nil)
	requireStatus(t, rec, http.StatusOK)
	orgs := decode[cnapsdk.ListResponse[cnapsdk.Organization]](t, rec)
	require.Len(t, orgs.Items, 1)
	require.Equal(t, "Harvard University", orgs.Items[0].Name)

	rec = env.do(t, http.MethodGet, "/v1/groups/"+lab.ID, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, org.ID, decode[cnapsdk.ResearchGroup](t, rec).OrganizationID)

	rec = env.do(t, http.MethodGet, "/v1/members/"+m.ID, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, u.ID, decode[cnapsdk.Member](t, rec).UserID)

	for _, target := range []string{"/v1/purchases", "/v1/orders"} {
		rec = env.do(t, http.MethodGet, target, tok, nil)
		requireStatus(t, rec, http.StatusOK)
		require.JSONEq(t, `{"items":[]}`, rec.Body.String())
	}

	for _, target := range []string{"/v1/purchases/", "/v1/orders/", "/v1/organizations/"} {
		rec = env.do(t, http.MethodGet, target+idx.New().String(), tok, nil)
		requireStatus(t, rec, http.StatusNotFound)
	}
}

func TestRecordsRequireStaff(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/products", "", nil)
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = env.do(t, http.MethodDelete, "/v1/products/"+idx.New().String(), env.token(t, "reader"), nil)
	requireStatus(t, rec, http.StatusForbidden)
}
