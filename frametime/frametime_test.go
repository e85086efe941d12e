package frametime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromRateExactForCommonRates(t *testing.T) {
	for _, fps := range []int64{24, 25, 30, 48, 50, 60, 120} {
		d := FromRate(fps)
		require.Equal(t, unitsPerSecond, int64(d)*fps, "fps=%d should divide evenly", fps)
	}
}

func TestFromRateNonPositiveIsZero(t *testing.T) {
	require.Equal(t, Zero, FromRate(0))
	require.Equal(t, Zero, FromRate(-30))
}

func TestFromSecondsRoundTripsThroughSeconds(t *testing.T) {
	d := FromSeconds(2.5)
	require.InDelta(t, 2.5, d.Seconds(), 1e-9)
}

func TestAddSub(t *testing.T) {
	a := FromRate(30)
	b := FromRate(60)
	require.Equal(t, a, a.Add(b).Sub(b))
}

func TestStringIsSeconds(t *testing.T) {
	require.Equal(t, "1s", Zero.Add(FromSeconds(1)).String())
}
