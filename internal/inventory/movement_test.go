package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNextQuantityIn(t *testing.T) {
	next, err := NextQuantity(dec("3"), MovementIn, dec("2.5"))
	require.NoError(t, err)
	require.True(t, dec("5.5").Equal(next))
}

func TestNextQuantityOut(t *testing.T) {
	next, err := NextQuantity(dec("5"), MovementOut, dec("5"))
	require.NoError(t, err)
	require.True(t, next.IsZero())
}

func TestNextQuantityOutInsufficient(t *testing.T) {
	_, err := NextQuantity(dec("3"), MovementOut, dec("4"))
	require.ErrorIs(t, err, ErrInsufficientStock)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.True(t, dec("4").Equal(insufficient.Attempted))
	require.True(t, dec("3").Equal(insufficient.Available))
}

func TestNextQuantityAdjustIsAbsolute(t *testing.T) {
	next, err := NextQuantity(dec("9"), MovementAdjust, dec("2"))
	require.NoError(t, err)
	require.True(t, dec("2").Equal(next), "adjust replaces, not deltas")

	next, err = NextQuantity(dec("9"), MovementAdjust, decimal.Zero)
	require.NoError(t, err)
	require.True(t, next.IsZero())
}

func TestNextQuantityBoundsCheckedFirst(t *testing.T) {
	// A non-positive quantity fails before the stock rule, even when the
	// stock rule would also reject it.
	for _, kind := range []MovementKind{MovementIn, MovementOut} {
		_, err := NextQuantity(decimal.Zero, kind, decimal.Zero)
		require.ErrorIs(t, err, ErrInvalidQuantity, "kind %s", kind)
		_, err = NextQuantity(decimal.Zero, kind, dec("-3"))
		require.ErrorIs(t, err, ErrInvalidQuantity, "kind %s", kind)
		require.False(t, errors.Is(err, ErrInsufficientStock))
	}

	_, err := NextQuantity(decimal.Zero, MovementAdjust, dec("-1"))
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNextQuantityUnknownKind(t *testing.T) {
	_, err := NextQuantity(decimal.Zero, MovementKind("transfer"), dec("1"))
	require.ErrorIs(t, err, ErrInvalidKind)
}
