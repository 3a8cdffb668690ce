package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nfvri/isl-simulator/pkg/model"
	"github.com/nfvri/isl-simulator/pkg/signal"
	"github.com/nfvri/isl-simulator/pkg/sweep"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFlag    = "config"
	logLevelFlag  = "log-level"
	outputDirFlag = "output-dir"
	targetBERFlag = "target-ber"
	txPowerFlag   = "tx-power"

	// scenario looked up on the config search path when --config is not given
	defaultScenario = "islsim"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ISLSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "islsim",
		Short:         "Optical inter-satellite link budget and BER analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(configFlag, "", "scenario file (default: islsim.yaml on the config search path)")
	flags.String(logLevelFlag, "info", "log level: trace, debug, info, warn, error")
	flags.String(outputDirFlag, "", "directory the charts are written to (overrides output.dir)")
	for _, name := range []string{configFlag, logLevelFlag, outputDirFlag} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newPlotCmd(v), newBudgetCmd(v))
	return root
}

func newPlotCmd(v *viper.Viper) *cobra.Command {
	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render both the power and the BER chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, v)
		},
	}
	plotCmd.AddCommand(
		&cobra.Command{
			Use:   "power",
			Short: "Render the transmit vs received power chart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOne(cmd, v, sweep.PlotTxRxPower)
			},
		},
		&cobra.Command{
			Use:   "ber",
			Short: "Render the BER vs SNR chart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOne(cmd, v, sweep.PlotBER)
			},
		},
	)
	return plotCmd
}

func newBudgetCmd(v *viper.Viper) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Print the link budget per distance and the SNR needed for a target BER",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBudget(cmd, v)
		},
	}
	budgetCmd.Flags().Float64(targetBERFlag, 1e-9, "bit error rate the required SNR is solved for")
	budgetCmd.Flags().Float64(txPowerFlag, 0, "transmit power in watts (default: top of the tx power sweep)")
	_ = v.BindPFlag(targetBERFlag, budgetCmd.Flags().Lookup(targetBERFlag))
	_ = v.BindPFlag(txPowerFlag, budgetCmd.Flags().Lookup(txPowerFlag))
	return budgetCmd
}

func setupLogging(cmd *cobra.Command, v *viper.Viper) error {
	level, err := log.ParseLevel(v.GetString(logLevelFlag))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())
	return nil
}

// loadModel resolves the scenario: defaults, then the config file, then flags.
func loadModel(v *viper.Viper) (*model.Model, error) {
	m := model.DefaultModel()
	var err error
	if path := v.GetString(configFlag); path != "" {
		err = model.LoadConfigFile(&m, path)
	} else {
		err = model.LoadConfig(&m, defaultScenario)
	}
	if err != nil {
		return nil, err
	}
	if dir := v.GetString(outputDirFlag); dir != "" {
		m.Output.Dir = dir
	}
	return &m, nil
}

func runAll(cmd *cobra.Command, v *viper.Viper) error {
	logger := log.WithField("run", uuid.New().String())
	m, err := loadModel(v)
	if err != nil {
		return err
	}
	logger.Infof("Sweeping %d distances, %d tx powers, %d SNR values",
		len(m.Sweeps.DistancesKm), m.Sweeps.TxPowerW.Len(), m.Sweeps.SNRdB.Len())

	artifacts, err := sweep.Run(m)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Fprintln(cmd.OutOrStdout(), a.Path)
	}
	logger.Info("Done")
	return nil
}

func runOne(cmd *cobra.Command, v *viper.Viper, procedure func(*model.Model) (sweep.Artifact, error)) error {
	logger := log.WithField("run", uuid.New().String())
	m, err := loadModel(v)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	artifact, err := procedure(m)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
	logger.Infof("Done %s", artifact.Name)
	return nil
}

type budgetReport struct {
	Link          model.OpticalLink   `yaml:"link"`
	TargetBER     float64             `yaml:"targetBer"`
	RequiredSNRdB float64             `yaml:"requiredSnrDb"`
	Budgets       []signal.LinkBudget `yaml:"budgets"`
}

func runBudget(cmd *cobra.Command, v *viper.Viper) error {
	m, err := loadModel(v)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	txPower := v.GetFloat64(txPowerFlag)
	if txPower <= 0 {
		txPower = m.Sweeps.TxPowerW.Max
	}
	targetBER := v.GetFloat64(targetBERFlag)
	requiredSNR, err := signal.RequiredSNR(targetBER)
	if err != nil {
		return err
	}

	report := budgetReport{
		Link:          m.Link,
		TargetBER:     targetBER,
		RequiredSNRdB: requiredSNR,
	}
	for _, d := range m.Sweeps.DistancesM() {
		report.Budgets = append(report.Budgets, signal.NewLinkBudget(m.Link, txPower, d))
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal link budget: %v", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
