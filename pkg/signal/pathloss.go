package signal

import (
	"math"

	"github.com/nfvri/isl-simulator/pkg/model"
	log "github.com/sirupsen/logrus"
)

// GeometricLossDB spreading loss in dB between the transmit and receive
// apertures. Negative when the spot is still smaller than the receive aperture.
func GeometricLossDB(link model.OpticalLink, distance float64) float64 {
	return -LinearToDb(collectedFraction(link, distance))
}

// MaxRange returns the distance in meters at which txPower watts are received
// at exactly sensitivity watts. Beyond it the link does not close.
func MaxRange(link model.OpticalLink, txPower, sensitivity float64) float64 {
	theta := BeamDivergence(link.Wavelength, link.TxAperture)
	// P_rx = P_tx * (D_rx / (d*theta))^2
	d := link.RxAperture / theta * math.Sqrt(txPower/sensitivity)
	log.Debugf("MaxRange txPower:%v sensitivity:%v theta:%v -> %v m", txPower, sensitivity, theta, d)
	return d
}

// LinkBudget single operating point of the optical link
type LinkBudget struct {
	DistanceKm      float64 `yaml:"distanceKm"`
	TxPowerW        float64 `yaml:"txPowerW"`
	TxPowerDBm      float64 `yaml:"txPowerDbm"`
	DivergenceRad   float64 `yaml:"divergenceRad"`
	SpotRadiusM     float64 `yaml:"spotRadiusM"`
	GeometricLossDB float64 `yaml:"geometricLossDb"`
	RxPowerW        float64 `yaml:"rxPowerW"`
	RxPowerDBm      float64 `yaml:"rxPowerDbm"`
}

// NewLinkBudget evaluates the link at txPower watts and distance meters
func NewLinkBudget(link model.OpticalLink, txPower, distance float64) LinkBudget {
	theta := BeamDivergence(link.Wavelength, link.TxAperture)
	rxPower := ReceivedPower(link, txPower, distance)
	return LinkBudget{
		DistanceKm:      distance / 1e3,
		TxPowerW:        txPower,
		TxPowerDBm:      WToDbm(txPower),
		DivergenceRad:   theta,
		SpotRadiusM:     SpotRadius(distance, theta),
		GeometricLossDB: GeometricLossDB(link, distance),
		RxPowerW:        rxPower,
		RxPowerDBm:      WToDbm(rxPower),
	}
}
