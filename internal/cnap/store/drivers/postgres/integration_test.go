package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway Postgres and returns a migrated Store.
func setupPostgres(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "cnap",
			"POSTGRES_PASSWORD": "cnap",
			"POSTGRES_DB":       "cnap",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://cnap:cnap@%s:%s/cnap?sslmode=disable", host, port.Port())
	st, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestPostgresIntegration(t *testing.T) {
	st := setupPostgres(t)
	ctx := context.Background()

	g := domain.ResearchGroup{ID: idx.New().String(), PIName: "Dana Okafor", PIEmail: "pi@lab.org"}
	require.NoError(t, st.ResearchGroups().CreateResearchGroup(ctx, g))
	require.ErrorIs(t, st.ResearchGroups().CreateResearchGroup(ctx, domain.ResearchGroup{ID: idx.New().String(), PIEmail: "pi@lab.org"}),
		store.ErrAlreadyExists)

	ceiling := domain.Cents(100)
	p := domain.Payment{ID: idx.New().String(), Type: domain.PaymentPurchaseOrder, ResearchGroupID: g.ID, Code: "PG-1", Amount: &ceiling}
	require.NoError(t, st.Payments().CreatePayment(ctx, p))
	_, err := st.Budgets().EnsureBudget(ctx, domain.Budget{ID: idx.New().String(), PaymentID: p.ID})
	require.NoError(t, err)

	ok, err := st.Budgets().ChargeBudget(ctx, p.ID, 70, ceiling)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = st.Budgets().ChargeBudget(ctx, p.ID, 70, ceiling)
	require.NoError(t, err)
	require.False(t, ok)

	prod := domain.Product{ID: idx.New().String(), Name: "RNA-Seq", Quantity: 2, IsQuantityLimited: true, WorkflowPK: 3}
	require.NoError(t, st.Products().CreateProduct(ctx, prod))
	ok, err = st.Products().ReserveInventory(ctx, prod.ID, 3)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = st.Products().ReserveInventory(ctx, prod.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)
}
