package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nfvri/isl-simulator/pkg/model"
	"github.com/nfvri/isl-simulator/pkg/signal"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"
)

// Artifact chart image written by a sweep
type Artifact struct {
	Name   string
	Path   string
	Curves int
}

// TxRxPowerChart sweeps the transmit power at every configured distance:
// x is transmit power in mW, y is received power in µW.
func TxRxPowerChart(m *model.Model) *Chart {
	txPowers := m.Sweeps.TxPowerW.Values()
	txMw := signal.ScaleTo(1e3, txPowers)

	chart := &Chart{
		Title:  "Transmit Power vs Received Power",
		XLabel: "Transmit Power (mW)",
		YLabel: "Received Power (µW)",
	}
	for _, d := range m.Sweeps.DistancesM() {
		rxPowers := signal.ReceivedPowers(m.Link, txPowers, d)
		chart.Series = append(chart.Series, Series{
			Label:  distanceLabel(d),
			Points: NewXYs(txMw, signal.ScaleTo(1e6, rxPowers)),
		})
	}
	return chart
}

// BERChart sweeps the SNR once per configured distance on a log BER axis.
// The OOK model has no distance term, so every curve is identical.
func BERChart(m *model.Model) *Chart {
	snrDb := m.Sweeps.SNRdB.Values()

	chart := &Chart{
		Title:   "BER vs SNR for OOK Modulation",
		XLabel:  "SNR (dB)",
		YLabel:  "Bit Error Rate (BER)",
		LogY:    true,
		Markers: true,
	}
	for _, d := range m.Sweeps.DistancesM() {
		chart.Series = append(chart.Series, Series{
			Label:  distanceLabel(d),
			Points: NewXYs(snrDb, signal.BERCurve(snrDb)),
		})
	}
	return chart
}

// PlotTxRxPower renders the transmit vs received power chart into the output directory
func PlotTxRxPower(m *model.Model) (Artifact, error) {
	return save(m, "power", m.Output.PowerChart, TxRxPowerChart(m))
}

// PlotBER renders the BER vs SNR chart into the output directory
func PlotBER(m *model.Model) (Artifact, error) {
	return save(m, "ber", m.Output.BERChart, BERChart(m))
}

// Run validates the scenario and writes both charts. The two sweeps share no
// state and are rendered concurrently; artifacts are returned power first.
func Run(m *model.Model) ([]Artifact, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.Output.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %v", m.Output.Dir, err)
	}

	procedures := []func(*model.Model) (Artifact, error){PlotTxRxPower, PlotBER}
	artifacts := make([]Artifact, len(procedures))
	errs := make([]error, len(procedures))

	var wg sync.WaitGroup
	for i, procedure := range procedures {
		wg.Add(1)
		go func(i int, procedure func(*model.Model) (Artifact, error)) {
			defer wg.Done()
			artifacts[i], errs[i] = procedure(m)
		}(i, procedure)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.Infof("---------------- Wrote %d charts to %s ---------------", len(artifacts), m.Output.Dir)
	return artifacts, nil
}

func save(m *model.Model, name, file string, chart *Chart) (Artifact, error) {
	path := filepath.Join(m.Output.Dir, file)
	width := vg.Length(m.Output.Width) * vg.Inch
	height := vg.Length(m.Output.Height) * vg.Inch
	if err := chart.Save(path, width, height); err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: name, Path: path, Curves: len(chart.Series)}, nil
}

func distanceLabel(distanceM float64) string {
	return fmt.Sprintf("%.0f km", distanceM/1e3)
}
