package signal

import (
	"math"

	"github.com/nfvri/isl-simulator/pkg/model"
	"gonum.org/v1/gonum/floats"
)

// AiryDiskFactor first zero of the Airy pattern, in units of lambda/D
const AiryDiskFactor = 1.22

// BeamDivergence returns the diffraction-limited divergence angle in radians
// of a beam of the given wavelength leaving an aperture of the given diameter.
func BeamDivergence(wavelength, diameter float64) float64 {
	return AiryDiskFactor * wavelength / diameter
}

// SpotRadius radius of the beam footprint after travelling distance meters
func SpotRadius(distance, divergence float64) float64 {
	return distance * divergence / 2
}

// ApertureArea collecting area of a circular aperture
func ApertureArea(diameter float64) float64 {
	return math.Pi * math.Pow(diameter/2, 2)
}

// ReceivedPower calculates the power collected by the receive aperture when
// txPower watts are spread uniformly over the beam footprint at distance meters.
func ReceivedPower(link model.OpticalLink, txPower, distance float64) float64 {
	return txPower * collectedFraction(link, distance)
}

// ReceivedPowers evaluates ReceivedPower for every transmit power at a single distance
func ReceivedPowers(link model.OpticalLink, txPowers []float64, distance float64) []float64 {
	rxPowers := make([]float64, len(txPowers))
	copy(rxPowers, txPowers)
	floats.Scale(collectedFraction(link, distance), rxPowers)
	return rxPowers
}

// collectedFraction ratio of receive aperture area to spot area
func collectedFraction(link model.OpticalLink, distance float64) float64 {
	theta := BeamDivergence(link.Wavelength, link.TxAperture)
	spotArea := math.Pi * math.Pow(SpotRadius(distance, theta), 2)
	return ApertureArea(link.RxAperture) / spotArea
}
