package signal

import (
	"math"
	"testing"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBEROOKBoundsAndMonotonic(t *testing.T) {
	prev := 0.5
	for snr := -40.0; snr <= 25; snr += 0.25 {
		ber := BEROOK(snr)
		assert.GreaterOrEqual(t, ber, 0.0, "snr %v", snr)
		assert.LessOrEqual(t, ber, 0.5, "snr %v", snr)
		assert.LessOrEqual(t, ber, prev, "snr %v", snr)
		prev = ber
	}
}

func TestBEROOKLimits(t *testing.T) {
	assert.InDelta(t, 0.5, BEROOK(-60), 1e-3)
	assert.Equal(t, 0.5, BEROOK(math.Inf(-1)))
	assert.Less(t, BEROOK(20), 1e-20)
	assert.Equal(t, 0.0, BEROOK(math.Inf(1)))
}

func TestBEROOKSweepEnds(t *testing.T) {
	assert.Less(t, BEROOK(7), BEROOK(-2))
	// 10 dB: 0.5*erfc(sqrt(5))
	assert.InEpsilon(t, 7.8270e-4, BEROOK(10), 1e-3)
}

func TestBERCurve(t *testing.T) {
	snr := []float64{-2, -1, 0, 1, 2, 3, 4, 5, 6, 7}
	ber := BERCurve(snr)
	require.Len(t, ber, len(snr))
	for i := range snr {
		assert.Equal(t, BEROOK(snr[i]), ber[i])
		if i > 0 {
			assert.Less(t, ber[i], ber[i-1])
		}
	}
	assert.Empty(t, BERCurve(nil))
}

func TestRequiredSNR(t *testing.T) {
	for _, target := range []float64{0.1, 1e-3, 1e-6, 1e-9, 1e-12} {
		snrDb, err := RequiredSNR(target)
		require.NoError(t, err, "target %v", target)

		// closed form inverse of 0.5*erfc(sqrt(snr/2))
		expected := LinearToDb(2 * math.Pow(math.Erfcinv(2*target), 2))
		assert.InDelta(t, expected, snrDb, 1e-3, "target %v", target)
		assert.InEpsilon(t, target, BEROOK(snrDb), 1e-4, "target %v", target)
	}
}

func TestRequiredSNRBelowFloatRange(t *testing.T) {
	// BEROOK itself underflows to zero for the smallest of these
	for _, target := range []float64{1e-100, 1e-300, 1e-320} {
		snrDb, err := RequiredSNR(target)
		require.NoError(t, err, "target %v", target)
		assert.InDelta(t, math.Log(target), logBEROOK(snrDb), 1e-6, "target %v", target)
	}

	snrDb, err := RequiredSNR(1e-100)
	require.NoError(t, err)
	assert.InEpsilon(t, 1e-100, BEROOK(snrDb), 1e-4)
}

func TestLogBEROOK(t *testing.T) {
	for snr := -20.0; snr <= 25; snr += 0.5 {
		assert.InDelta(t, math.Log(BEROOK(snr)), logBEROOK(snr), 1e-9, "snr %v", snr)
	}
	// both sides of the switch to the asymptotic series agree
	below := LinearToDb(2 * math.Pow(math.Nextafter(erfcAsymptoticZ, 0), 2))
	above := LinearToDb(2 * math.Pow(erfcAsymptoticZ, 2))
	assert.InDelta(t, logBEROOK(below), logBEROOK(above), 1e-8)
	assert.False(t, math.IsInf(logBEROOK(40), 0))
	assert.Less(t, logBEROOK(40), logBEROOK(35))
}

func TestSolveRequiredSNRNotConverged(t *testing.T) {
	// one Newton step from 200 dB cannot reach the 1e-12 root near 16 dB
	_, err := solveRequiredSNR(math.Log(1e-12), 200, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "200")
}

func TestRequiredSNRInvalidTarget(t *testing.T) {
	for _, target := range []float64{0, -1e-3, 0.5, 0.7, math.NaN()} {
		_, err := RequiredSNR(target)
		require.Error(t, err, "target %v", target)
		assert.True(t, errors.IsInvalid(err))
	}
}
