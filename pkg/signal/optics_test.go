package signal

import (
	"math"
	"testing"

	"github.com/nfvri/isl-simulator/pkg/model"
	"github.com/stretchr/testify/assert"
)

var referenceLink = model.OpticalLink{
	Wavelength: 1550e-9,
	TxAperture: 0.1,
	RxAperture: 0.1,
}

func TestBeamDivergence(t *testing.T) {
	theta := BeamDivergence(1550e-9, 0.1)
	assert.InDelta(t, 1.891e-5, theta, 1e-9)

	for _, wavelength := range []float64{405e-9, 850e-9, 1064e-9, 1550e-9} {
		for _, diameter := range []float64{0.01, 0.1, 0.3} {
			theta := BeamDivergence(wavelength, diameter)
			assert.Greater(t, theta, 0.0)
			assert.InEpsilon(t, 2*theta, BeamDivergence(2*wavelength, diameter), 1e-12)
			assert.InEpsilon(t, theta/2, BeamDivergence(wavelength, 2*diameter), 1e-12)
		}
	}
}

func TestReceivedPowerReferenceScenario(t *testing.T) {
	distance := 200e3
	theta := BeamDivergence(referenceLink.Wavelength, referenceLink.TxAperture)
	assert.InDelta(t, 1.891, SpotRadius(distance, theta), 1e-3)

	rx := ReceivedPower(referenceLink, 0.5, distance)
	t.Logf("rx power at 200 km, 0.5 W: %e W", rx)
	assert.InEpsilon(t, 3.4955e-4, rx, 1e-3)

	farther := ReceivedPower(referenceLink, 0.5, 400e3)
	stronger := ReceivedPower(referenceLink, 1.0, distance)
	assert.Less(t, farther, rx)
	assert.Less(t, rx, stronger)
	assert.InEpsilon(t, 2*rx, stronger, 1e-12)
	// inverse square
	assert.InEpsilon(t, rx/4, farther, 1e-12)
}

func TestReceivedPowerLinearInTxPower(t *testing.T) {
	for _, distance := range []float64{1e3, 200e3, 1000e3, 40000e3} {
		for _, tx := range []float64{0, 1e-3, 0.1, 0.5, 1, 10} {
			rx := ReceivedPower(referenceLink, tx, distance)
			assert.GreaterOrEqual(t, rx, 0.0)
			assert.InDelta(t, 2*rx, ReceivedPower(referenceLink, 2*tx, distance), 1e-15*math.Max(1, rx))
		}
	}
}

func TestReceivedPowerDecreasesWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for d := 100e3; d <= 2000e3; d += 50e3 {
		rx := ReceivedPower(referenceLink, 0.5, d)
		assert.Less(t, rx, prev, "distance %v", d)
		prev = rx
	}
}

func TestReceivedPowers(t *testing.T) {
	tx := model.DefaultModel().Sweeps.TxPowerW.Values()
	rx := ReceivedPowers(referenceLink, tx, 600e3)
	assert.Len(t, rx, len(tx))
	for i := range tx {
		assert.InEpsilon(t, ReceivedPower(referenceLink, tx[i], 600e3), rx[i], 1e-12)
	}
	// input is untouched
	assert.Equal(t, 0.1, tx[0])
	assert.Empty(t, ReceivedPowers(referenceLink, nil, 600e3))
}

func TestReceivedPowerZeroDistance(t *testing.T) {
	assert.True(t, math.IsInf(ReceivedPower(referenceLink, 1, 0), 1))
}
