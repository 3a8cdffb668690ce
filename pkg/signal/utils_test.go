package signal

import (
	"math"
	"testing"

	"gotest.tools/assert"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func Test_DbConversions(t *testing.T) {
	assert.Assert(t, almostEqual(DbToLinear(10), 10))
	assert.Equal(t, 1.0, DbToLinear(0))
	assert.Assert(t, almostEqual(LinearToDb(100), 20))
	assert.Assert(t, almostEqual(WToDbm(1), 30))
	assert.Equal(t, 0.0, MwToDbm(1))

	for _, db := range []float64{-30, -2.5, 0, 7, 42} {
		assert.Assert(t, almostEqual(LinearToDb(DbToLinear(db)), db), "round trip of %v dB", db)
	}
}

func Test_ScaleTo(t *testing.T) {
	watts := []float64{0.5, 1, 2}
	mw := ScaleTo(1e3, watts)
	assert.DeepEqual(t, []float64{500, 1000, 2000}, mw)
	assert.Equal(t, 0.5, watts[0])
	assert.Equal(t, 0, len(ScaleTo(1e3, nil)))
}
