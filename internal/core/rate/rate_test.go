package rate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsZeroNumeratorOrDenominator(t *testing.T) {
	_, err := New(0, 1, RoundingDown)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = New(1, 0, RoundingDown)
	require.ErrorIs(t, err, ErrInvalidRate)
}

func TestNewRejectsOutOfRangeRounding(t *testing.T) {
	_, err := New(1, 1, Rounding(2))
	require.ErrorIs(t, err, ErrInvalidRate)
}

func TestEvaluateRoundingDown(t *testing.T) {
	r, err := New(2, 3, RoundingDown)
	require.NoError(t, err)

	got, err := r.Evaluate(10)
	require.NoError(t, err)
	require.Equal(t, uint64(6), got) // floor(10*2/3) = floor(6.66) = 6
}

func TestEvaluateRoundingUp(t *testing.T) {
	r, err := New(2, 3, RoundingUp)
	require.NoError(t, err)

	got, err := r.Evaluate(10)
	require.NoError(t, err)
	require.Equal(t, uint64(7), got) // ceil(6.66) = 7
}

func TestEvaluateExactDivisionIsRoundingAgnostic(t *testing.T) {
	down, err := New(1, 1, RoundingDown)
	require.NoError(t, err)
	up, err := New(1, 1, RoundingUp)
	require.NoError(t, err)

	gotDown, err := down.Evaluate(1000)
	require.NoError(t, err)
	gotUp, err := up.Evaluate(1000)
	require.NoError(t, err)
	require.Equal(t, gotDown, gotUp)
	require.Equal(t, uint64(1000), gotDown)
}

func TestSplitWithUpRounding(t *testing.T) {
	// End-to-end scenario 3: mint 1000 (decimals 6), rate (2,1,Up), Split.
	r, err := New(2, 1, RoundingUp)
	require.NoError(t, err)

	got, err := r.Evaluate(1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), got)
}

func TestConvertCrossDecimalScenario(t *testing.T) {
	// End-to-end scenario 4: source decimals 6 balance 10^9, target decimals
	// 9, rate (3,7,Down): floor(10^9 * 3 * 10^3 / 7) = 428_571_428_571.
	r, err := New(3, 7, RoundingDown)
	require.NoError(t, err)

	got, err := r.Convert(1_000_000_000, 6, 9)
	require.NoError(t, err)
	require.Equal(t, uint64(428_571_428_571), got)
}

func TestConvertIdentity(t *testing.T) {
	r, err := New(1, 1, RoundingDown)
	require.NoError(t, err)

	got, err := r.Convert(12345, 6, 6)
	require.NoError(t, err)
	require.Equal(t, uint64(12345), got)
}

func TestConvertZeroShortCircuits(t *testing.T) {
	r, err := New(3, 7, RoundingDown)
	require.NoError(t, err)

	got, err := r.Convert(0, 2, 9)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)
}

func TestConvertDecimalShift(t *testing.T) {
	// decimal shift: r(1,1,Down).convert(a, d, d+k) = a * 10^k.
	r, err := New(1, 1, RoundingDown)
	require.NoError(t, err)

	got, err := r.Convert(42, 2, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(42_000), got)
}

func TestConvertNegativeShift(t *testing.T) {
	r, err := New(1, 1, RoundingDown)
	require.NoError(t, err)

	got, err := r.Convert(42_000, 5, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(42), got)
}

func TestEvaluateOverflowsPastU64(t *testing.T) {
	r, err := New(255, 1, RoundingDown)
	require.NoError(t, err)

	_, err = r.Evaluate(^uint64(0))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestRateSymmetryProperty(t *testing.T) {
	down, err := New(7, 13, RoundingDown)
	require.NoError(t, err)
	up, err := New(7, 13, RoundingUp)
	require.NoError(t, err)

	for _, a := range []uint64{0, 1, 2, 13, 100, 999, 1_000_000} {
		gotDown, err := down.Evaluate(a)
		require.NoError(t, err)
		exact := float64(a) * 7 / 13
		require.LessOrEqual(t, float64(gotDown), exact)
		require.Less(t, exact, float64(gotDown)+1)

		gotUp, err := up.Evaluate(a)
		require.NoError(t, err)
		require.Less(t, float64(gotUp)-1, exact)
		require.LessOrEqual(t, exact, float64(gotUp))
	}
}
