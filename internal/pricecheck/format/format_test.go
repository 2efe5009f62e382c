package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRupiah(t *testing.T) {
	v := 1250000.4
	require.Equal(t, "Rp 1.250.000", Rupiah(&v))
	small := 950.0
	require.Equal(t, "Rp 950", Rupiah(&small))
	require.Equal(t, "", Rupiah(nil))
}

func TestScoresAndDates(t *testing.T) {
	require.Equal(t, "82.35", Score(82.352941))
	require.Equal(t, "3.50%", Percent(3.5))
	require.Equal(t, "12.345", Count(12345))

	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "05-03-2024", Date(&d))
	require.Equal(t, "05/03/24", ShortDate(d))
	require.Equal(t, "", Date(nil))
}
