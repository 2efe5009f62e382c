package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"Rp 1250000", 1250000, true},
		{"1250000.50", 1250000.5, true},
		{"IDR 75.000", 75, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"1.2.3", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCurrency(c.in)
		require.Equal(t, c.ok, ok, c.in)
		if c.ok {
			require.InDelta(t, c.want, got, 1e-9, c.in)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	v, ok := ParseNumeric(" 96.5 ")
	require.True(t, ok)
	require.InDelta(t, 96.5, v, 1e-9)

	_, ok = ParseNumeric("96,5")
	require.False(t, ok)
}

func TestRoundInt(t *testing.T) {
	require.Equal(t, int64(2), RoundInt(2.5))
	require.Equal(t, int64(4), RoundInt(3.5))
	require.Equal(t, int64(-1), RoundInt(-1.2))
}
