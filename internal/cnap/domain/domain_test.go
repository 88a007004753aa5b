package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentsString(t *testing.T) {
	require.Equal(t, "$0.00", Cents(0).String())
	require.Equal(t, "$60.00", Cents(6000).String())
	require.Equal(t, "$1234.05", Cents(123405).String())
	require.Equal(t, "-$0.50", Cents(-50).String())
}

func TestProductStock(t *testing.T) {
	limited := Product{IsQuantityLimited: true, Quantity: 3, UnitCost: 1500}
	require.True(t, limited.HasStock(3))
	require.False(t, limited.HasStock(4))
	cost, ok := limited.Cost(3)
	require.True(t, ok)
	require.Equal(t, Cents(4500), cost)

	unlimited := Product{Quantity: 0}
	require.True(t, unlimited.HasStock(1000))
}

func TestProductCostOverflow(t *testing.T) {
	p := Product{UnitCost: 1000}

	// 18446744073709552 * 1000 wraps to 384 cents in int64 arithmetic.
	_, ok := p.Cost(18446744073709552)
	require.False(t, ok)
	_, ok = p.Cost(18446744073709551)
	require.False(t, ok)
	_, ok = p.Cost(-1)
	require.False(t, ok)

	cost, ok := p.Cost(math.MaxInt64 / 1000)
	require.True(t, ok)
	require.Positive(t, int64(cost))

	free := Product{UnitCost: 0}
	cost, ok = free.Cost(math.MaxInt64)
	require.True(t, ok)
	require.Zero(t, cost)
}

func TestParsePaymentType(t *testing.T) {
	for _, s := range []string{"CC", "PO", "JN"} {
		pt, err := ParsePaymentType(s)
		require.NoError(t, err)
		require.Equal(t, PaymentType(s), pt)
	}
	_, err := ParsePaymentType("XX")
	require.Error(t, err)
}

func TestPendingStatusDone(t *testing.T) {
	require.False(t, PendingReview.Done())
	require.False(t, PendingAwaitingPI.Done())
	require.True(t, PendingCompleted.Done())
	require.True(t, PendingDuplicate.Done())
}

func TestUserFullName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	require.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	require.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}
