// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// MaxSamples upper bound on the number of samples a single Range may produce
const MaxSamples = 1_000_000

// Model optical inter-satellite link scenario
type Model struct {
	Link   OpticalLink `mapstructure:"link" yaml:"link"`
	Sweeps Sweeps      `mapstructure:"sweeps" yaml:"sweeps"`
	Output Output      `mapstructure:"output" yaml:"output"`
}

// OpticalLink holds the fixed terminal optics, all lengths in meters
type OpticalLink struct {
	Wavelength float64 `mapstructure:"wavelength" yaml:"wavelength"`
	TxAperture float64 `mapstructure:"txAperture" yaml:"txAperture"`
	RxAperture float64 `mapstructure:"rxAperture" yaml:"rxAperture"`
}

// Range is an inclusive, evenly stepped sweep
type Range struct {
	Min  float64 `mapstructure:"min" yaml:"min"`
	Max  float64 `mapstructure:"max" yaml:"max"`
	Step float64 `mapstructure:"step" yaml:"step"`
}

// Sweeps independent variables swept by the plot procedures
type Sweeps struct {
	TxPowerW    Range     `mapstructure:"txPowerW" yaml:"txPowerW"`
	DistancesKm []float64 `mapstructure:"distancesKm" yaml:"distancesKm"`
	SNRdB       Range     `mapstructure:"snrDb" yaml:"snrDb"`
}

// Output chart destination and size in inches
type Output struct {
	Dir        string  `mapstructure:"dir" yaml:"dir"`
	PowerChart string  `mapstructure:"powerChart" yaml:"powerChart"`
	BERChart   string  `mapstructure:"berChart" yaml:"berChart"`
	Width      float64 `mapstructure:"width" yaml:"width"`
	Height     float64 `mapstructure:"height" yaml:"height"`
}

// DefaultModel returns the reference scenario: 1550 nm, 10 cm apertures,
// 100 mW to 1 W transmit power, 200 to 1000 km and -2 to 7 dB SNR.
func DefaultModel() Model {
	return Model{
		Link: OpticalLink{
			Wavelength: 1550e-9,
			TxAperture: 0.1,
			RxAperture: 0.1,
		},
		Sweeps: Sweeps{
			TxPowerW:    Range{Min: 0.1, Max: 1.0, Step: 0.01},
			DistancesKm: []float64{200, 400, 600, 800, 1000},
			SNRdB:       Range{Min: -2, Max: 7, Step: 1},
		},
		Output: Output{
			Dir:        ".",
			PowerChart: "tx_vs_rx_power.png",
			BERChart:   "ber_vs_snr.png",
			Width:      8,
			Height:     6,
		},
	}
}

// Len number of samples in the range, 0 when the range is empty, not finite
// or would exceed MaxSamples
func (r Range) Len() int {
	if !isFinite(r.Min) || !isFinite(r.Max) || !isFinite(r.Step) || r.Step <= 0 || r.Max < r.Min {
		return 0
	}
	// 1e-9 absorbs float error so that Max itself is included
	n := math.Floor((r.Max-r.Min)/r.Step+1e-9) + 1
	if !(n <= MaxSamples) {
		return 0
	}
	return int(n)
}

// Values returns the samples Min, Min+Step, ... up to and including Max
func (r Range) Values() []float64 {
	n := r.Len()
	values := make([]float64, n)
	for i := range values {
		values[i] = r.Min + float64(i)*r.Step
	}
	return values
}

// DistancesM distances converted to meters
func (s Sweeps) DistancesM() []float64 {
	distances := make([]float64, len(s.DistancesKm))
	for i, km := range s.DistancesKm {
		distances[i] = km * 1e3
	}
	return distances
}

// Validate rejects physically meaningless parameters before any computation runs.
func (m *Model) Validate() error {
	if err := m.Link.Validate(); err != nil {
		return err
	}
	if err := m.Sweeps.TxPowerW.validate("sweeps.txPowerW"); err != nil {
		return err
	}
	if m.Sweeps.TxPowerW.Min < 0 {
		return errors.NewInvalid("sweeps.txPowerW.min must not be negative, got %v", m.Sweeps.TxPowerW.Min)
	}
	if err := m.Sweeps.SNRdB.validate("sweeps.snrDb"); err != nil {
		return err
	}
	if len(m.Sweeps.DistancesKm) == 0 {
		return errors.NewInvalid("sweeps.distancesKm must list at least one distance")
	}
	for i, d := range m.Sweeps.DistancesKm {
		if !(d > 0) || math.IsInf(d, 1) {
			return errors.NewInvalid("sweeps.distancesKm[%d] must be positive and finite, got %v", i, d)
		}
	}
	if m.Output.PowerChart == "" || m.Output.BERChart == "" {
		return errors.NewInvalid("output chart names must not be empty")
	}
	if m.Output.PowerChart == m.Output.BERChart {
		return errors.NewInvalid("output chart names must differ, both are %q", m.Output.PowerChart)
	}
	if !(m.Output.Width > 0) || !(m.Output.Height > 0) || math.IsInf(m.Output.Width, 1) || math.IsInf(m.Output.Height, 1) {
		return errors.NewInvalid("output size must be positive and finite, got %vx%v", m.Output.Width, m.Output.Height)
	}
	return nil
}

// Validate checks the optics are strictly positive
func (l OpticalLink) Validate() error {
	if !(l.Wavelength > 0) {
		return errors.NewInvalid("link.wavelength must be positive, got %v", l.Wavelength)
	}
	if !(l.TxAperture > 0) {
		return errors.NewInvalid("link.txAperture must be positive, got %v", l.TxAperture)
	}
	if !(l.RxAperture > 0) {
		return errors.NewInvalid("link.rxAperture must be positive, got %v", l.RxAperture)
	}
	return nil
}

func (r Range) validate(name string) error {
	if !isFinite(r.Min) || !isFinite(r.Max) || !isFinite(r.Step) {
		return errors.NewInvalid("%s must be finite, got min %v max %v step %v", name, r.Min, r.Max, r.Step)
	}
	if !(r.Step > 0) {
		return errors.NewInvalid("%s.step must be positive, got %v", name, r.Step)
	}
	if r.Max < r.Min {
		return errors.NewInvalid("%s.max (%v) is below min (%v)", name, r.Max, r.Min)
	}
	if n := (r.Max-r.Min)/r.Step + 1; !(n <= MaxSamples) {
		return errors.NewInvalid("%s has %g samples, more than %d", name, n, MaxSamples)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
