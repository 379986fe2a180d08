/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bgallie/enigma/enigma"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the machine settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective machine settings as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		initMachine()
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		cobra.CheckErr(enc.Encode(configView(machine.Settings())))
		cobra.CheckErr(enc.Close())
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the effective machine settings to the config file",
	Long: `Save the effective machine settings to the config file given by --config,
or $HOME/.enigma.yaml.  Settings given as flags are merged with those already
in the file.`,
	Run: func(cmd *cobra.Command, args []string) {
		initMachine()
		view := configView(machine.Settings())
		fileName := configFileName()
		// A separate viper keeps the saved values out of the running
		// configuration.
		v := viper.New()
		v.SetConfigFile(fileName)
		_ = v.ReadInConfig()
		v.Set("rotors", view.Rotors)
		v.Set("positions", view.Positions)
		v.Set("rings", view.Rings)
		v.Set("plugboard", view.Plugboard)
		v.Set("reflector", view.Reflector)
		cobra.CheckErr(v.WriteConfigAs(fileName))
		log.Info().Str("file", fileName).Msg("Settings saved")
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
}

// settingsView is the form settings take in the config file: the same
// strings the command line flags accept.
type settingsView struct {
	Rotors    string `yaml:"rotors"`
	Positions string `yaml:"positions"`
	Rings     string `yaml:"rings"`
	Plugboard string `yaml:"plugboard"`
	Reflector string `yaml:"reflector"`
}

func configView(s enigma.Settings) settingsView {
	return settingsView{
		Rotors:    strings.Join(s.Rotors, " "),
		Positions: enigma.FormatSettings(s.Positions),
		Rings:     enigma.FormatSettings(s.Rings),
		Plugboard: strings.Join(s.Plugboard, " "),
		Reflector: s.Reflector,
	}
}

func configFileName() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, enigmaConfigFile+".yaml")
}
