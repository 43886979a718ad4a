package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/domain"
)

func TestDeclaredTotal_StatedTotalWins(t *testing.T) {
	t.Parallel()

	stated := 99.5
	items := []domain.LineItem{{Name: "x", Price: 10, Quantity: 3}}

	got := domain.DeclaredTotal(items, &stated)
	require.True(t, got.Equal(decimal.NewFromFloat(99.5)), "got %s", got)
}

func TestDeclaredTotal_SumsPriceTimesQuantity(t *testing.T) {
	t.Parallel()

	items := []domain.LineItem{
		{Name: "a", Price: 10.5, Quantity: 2},
		{Name: "b", Price: 4},          // quantity defaults to 1
		{Name: "c", Quantity: 5},       // missing price counts as 0
		{Name: "d", Price: 1, Quantity: -2}, // nonsense quantity treated as 1
	}

	got := domain.DeclaredTotal(items, nil)
	require.True(t, got.Equal(decimal.NewFromFloat(26)), "got %s", got)
}

func TestDeclaredTotal_EmptyCart(t *testing.T) {
	t.Parallel()

	require.True(t, domain.DeclaredTotal(nil, nil).IsZero())
}
