package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"same day", "2024-01-01", "2024-01-01", 1},
		{"two nights", "2024-01-01", "2024-01-03", 3},
		{"one night", "2024-01-01", "2024-01-02", 2},
		{"reversed clamps to one", "2024-01-05", "2024-01-01", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, RentalDays(day(t, tc.start), day(t, tc.end)))
		})
	}
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(100, 1000, day(t, "2024-01-01"), day(t, "2024-01-03"))

	require.Equal(t, 3, q.RentalDays)
	require.Equal(t, 300.0, q.Subtotal)
	require.Equal(t, 30.0, q.ServiceFee)
	require.Equal(t, 330.0, q.Total)
	require.Equal(t, 200.0, q.Deposit)
}

func TestNewQuote_RoundsHalfUp(t *testing.T) {
	// 85 * 1 day = 85; 10% fee = 8.5 rounds to 9
	q := NewQuote(85, 1800, day(t, "2024-01-01"), day(t, "2024-01-01"))

	require.Equal(t, 1, q.RentalDays)
	require.Equal(t, 9.0, q.ServiceFee)
	require.Equal(t, 94.0, q.Total)
	require.Equal(t, 360.0, q.Deposit)
}
