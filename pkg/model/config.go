// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "ISLSIM"

// configPaths searched, in order, for <name>.yaml
var configPaths = []string{".", "$HOME/.islsim", "/etc/islsim"}

// LoadConfig loads the named scenario from the config search path into m.
// A missing file is not an error: the defaults of DefaultModel apply.
func LoadConfig(m *Model, name string) error {
	v := newViper()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config %s: %v", name, err)
		}
		log.Debugf("no config named %s found, using defaults", name)
	} else {
		log.Infof("Loaded scenario from %s", v.ConfigFileUsed())
	}
	return decode(v, m)
}

// LoadConfigFile loads the scenario from an explicit file path into m.
func LoadConfigFile(m *Model, path string) error {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %v", path, err)
	}
	log.Infof("Loaded scenario from %s", path)
	return decode(v, m)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultModel())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d Model) {
	v.SetDefault("link.wavelength", d.Link.Wavelength)
	v.SetDefault("link.txAperture", d.Link.TxAperture)
	v.SetDefault("link.rxAperture", d.Link.RxAperture)

	v.SetDefault("sweeps.txPowerW.min", d.Sweeps.TxPowerW.Min)
	v.SetDefault("sweeps.txPowerW.max", d.Sweeps.TxPowerW.Max)
	v.SetDefault("sweeps.txPowerW.step", d.Sweeps.TxPowerW.Step)
	v.SetDefault("sweeps.distancesKm", d.Sweeps.DistancesKm)
	v.SetDefault("sweeps.snrDb.min", d.Sweeps.SNRdB.Min)
	v.SetDefault("sweeps.snrDb.max", d.Sweeps.SNRdB.Max)
	v.SetDefault("sweeps.snrDb.step", d.Sweeps.SNRdB.Step)

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.powerChart", d.Output.PowerChart)
	v.SetDefault("output.berChart", d.Output.BERChart)
	v.SetDefault("output.width", d.Output.Width)
	v.SetDefault("output.height", d.Output.Height)
}

func decode(v *viper.Viper, m *Model) error {
	if err := v.Unmarshal(m); err != nil {
		return fmt.Errorf("failed to decode scenario: %v", err)
	}
	return nil
}
