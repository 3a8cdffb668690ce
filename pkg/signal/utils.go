package signal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DbToLinear converts a power ratio in dB to a linear ratio
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDb converts a linear power ratio to dB
func LinearToDb(linear float64) float64 {
	return 10 * math.Log10(linear)
}

// MwToDbm converts milliwatts to dBm
func MwToDbm(mw float64) float64 {
	return 10 * math.Log10(mw)
}

// WToDbm converts watts to dBm
func WToDbm(w float64) float64 {
	return MwToDbm(w * 1e3)
}

// ScaleTo returns a copy of values multiplied by factor, e.g. 1e3 for W to mW
func ScaleTo(factor float64, values []float64) []float64 {
	scaled := make([]float64, len(values))
	floats.ScaleTo(scaled, factor, values)
	return scaled
}
