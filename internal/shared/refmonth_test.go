package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseReferenceMonth(t *testing.T) {
	m, err := ParseReferenceMonth("2024-05")
	require.NoError(t, err)
	require.Equal(t, ReferenceMonth("2024-05"), m)

	for _, raw := range []string{"", "2024", "05/2024", "2024-13", "2024-5"} {
		_, err := ParseReferenceMonth(raw)
		require.ErrorIs(t, err, ErrInvalidReferenceMonth, raw)
	}
}

func TestCurrentReferenceMonth(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	require.Equal(t, ReferenceMonth("2024-12"), CurrentReferenceMonth(at))
}

func TestPrevCrossesYear(t *testing.T) {
	require.Equal(t, ReferenceMonth("2023-12"), ReferenceMonth("2024-01").Prev())
	require.Equal(t, ReferenceMonth("2024-04"), ReferenceMonth("2024-05").Prev())
}

func TestValid(t *testing.T) {
	require.True(t, ReferenceMonth("2024-05").Valid())
	require.False(t, ReferenceMonth("2024-5").Valid())
}
