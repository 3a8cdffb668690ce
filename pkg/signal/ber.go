package signal

import (
	"fmt"
	"math"

	"github.com/davidkleiven/gononlin/nonlin"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// BEROOK bit error rate of on-off keying in additive white gaussian noise
// for an SNR given in dB. Always within [0, 0.5] and non-increasing in SNR.
func BEROOK(snrDb float64) float64 {
	snr := DbToLinear(snrDb)
	return 0.5 * math.Erfc(math.Sqrt(snr/2))
}

// BERCurve evaluates BEROOK for every SNR value
func BERCurve(snrDb []float64) []float64 {
	ber := make([]float64, len(snrDb))
	for i, s := range snrDb {
		ber[i] = BEROOK(s)
	}
	return ber
}

const (
	requiredSNRTol      = 1e-9
	requiredSNRMaxiter  = 200
	maxRequiredSNRResid = 1e-6

	// above this erfc argument logBEROOK switches to the asymptotic series
	erfcAsymptoticZ = 20.0
)

// logBEROOK natural log of BEROOK. It stays finite where BEROOK itself
// underflows to zero.
func logBEROOK(snrDb float64) float64 {
	z := math.Sqrt(DbToLinear(snrDb) / 2)
	if z < erfcAsymptoticZ {
		return math.Log(0.5 * math.Erfc(z))
	}
	// erfc(z) ~ exp(-z^2)/(z*sqrt(pi)) * (1 - 1/2z^2 + 3/4z^4 - 15/8z^6 + 105/16z^8)
	z2 := z * z
	series := 1 - 1/(2*z2) + 3/(4*z2*z2) - 15/(8*z2*z2*z2) + 105/(16*z2*z2*z2*z2)
	return math.Log(0.5) - z2 - math.Log(z*math.SqrtPi) + math.Log(series)
}

// RequiredSNR returns the SNR in dB at which BEROOK equals targetBER.
// Any target in (0, 0.5) is reachable, including ones below the smallest
// normal float64.
func RequiredSNR(targetBER float64) (float64, error) {
	if !(targetBER > 0 && targetBER < 0.5) {
		return 0, errors.NewInvalid("target BER must be within (0, 0.5), got %v", targetBER)
	}

	// z^2 ~ -ln(2*BER) for small BER
	x0 := LinearToDb(-2 * math.Log(2*targetBER))
	snrDb, err := solveRequiredSNR(math.Log(targetBER), x0, requiredSNRMaxiter)
	if err != nil {
		return 0, fmt.Errorf("no SNR found for target BER %v: %v", targetBER, err)
	}
	return snrDb, nil
}

// solveRequiredSNR finds the root of logBEROOK(x) - logTarget starting at x0 dB
func solveRequiredSNR(logTarget, x0 float64, maxiter int) (float64, error) {
	problem := nonlin.Problem{
		F: func(out, x []float64) {
			out[0] = logBEROOK(x[0]) - logTarget
		},
	}

	solver := nonlin.NewtonKrylov{
		// Maximum number of Newton iterations
		Maxiter: maxiter,

		// Stepsize used to approximate the jacobian with finite differences
		StepSize: 1e-6,

		Tol: requiredSNRTol,
	}

	res, err := solver.Solve(problem, []float64{x0})
	if err != nil {
		return 0, fmt.Errorf("solver did not converge from %v dB: %v", x0, err)
	}
	snrDb, residual := res.X[0], res.F[0]
	log.Debugf("solveRequiredSNR logTarget:%v x0:%v snrDb:%v residual:%v", logTarget, x0, snrDb, residual)

	if math.IsNaN(snrDb) || math.IsNaN(residual) || math.Abs(residual) > maxRequiredSNRResid {
		return 0, fmt.Errorf("residual %v at %v dB, started from %v dB", residual, snrDb, x0)
	}
	return snrDb, nil
}
