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
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgallie/enigma/enigma"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	machine        *enigma.Machine
	wg             sync.WaitGroup
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	enigmaConfigFile = ".enigma"
	enigmaSuffix     = ".enigma"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "A three rotor Enigma I simulator",
	Long: `enigma enciphers and deciphers text the way the three rotor Enigma I did.
The machine is reciprocal: running the ciphertext through a machine set up with
the same key gives back the plaintext.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate(fmt.Sprintf("enigma %s (%s %s %s) built %s\n", Version, GitSummary, GitBranch, GitState, BuildDate))
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	pf.StringP("rotors", "r", "I II III", "the rotor order, left to right (eg. \"I-II-III\" or \"0,1,2\")")
	pf.StringP("positions", "s", "AAA", "the starting rotor positions, left to right, as letters (\"ADU\") or numbers (\"0,3,20\")")
	pf.StringP("rings", "R", "AAA", "the ring settings, left to right, as letters or numbers")
	pf.StringP("plugboard", "b", "", "the plugboard pairs (eg. \"QW ER\")")
	pf.StringP("reflector", "u", "B", "the reflector, B or C")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	pf.StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	bindFlags()
}

// bindFlags ties the machine setting flags to their viper keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	for _, key := range append(settingKeys, "log-level") {
		cobra.CheckErr(viper.BindPFlag(key, pf.Lookup(key)))
	}
}

// settingKeys are the viper keys that make up the machine settings.
var settingKeys = []string{"rotors", "positions", "rings", "plugboard", "reflector"}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(enigmaConfigFile)
	}

	viper.SetEnvPrefix("ENIGMA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	cobra.CheckErr(setupLogging(viper.GetString("log-level")))
	if err == nil {
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

// configList returns the value of key as a list of strings.  A config file
// may hold either a YAML list or a single string.
func configList(key string) []string {
	switch v := viper.Get(key).(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []interface{}:
		l := make([]string, 0, len(v))
		for _, e := range v {
			l = append(l, fmt.Sprint(e))
		}
		return l
	case []string:
		return v
	default:
		return []string{fmt.Sprint(v)}
	}
}

// machineSettings collects the machine settings from the flags, environment
// and config file.
func machineSettings() (enigma.Settings, error) {
	var s enigma.Settings
	var err error
	s.Rotors = enigma.ParseRotors(strings.Join(configList("rotors"), " "))
	if s.Positions, err = enigma.ParseSettings(strings.Join(configList("positions"), ",")); err != nil {
		return s, fmt.Errorf("positions: %w", err)
	}
	if s.Rings, err = enigma.ParseSettings(strings.Join(configList("rings"), ",")); err != nil {
		return s, fmt.Errorf("rings: %w", err)
	}
	s.Plugboard = enigma.ParsePlugboard(strings.Join(configList("plugboard"), " "))
	s.Reflector = viper.GetString("reflector")
	return s, nil
}

func initMachine() {
	s, err := machineSettings()
	cobra.CheckErr(err)
	machine, err = enigma.New(s)
	cobra.CheckErr(err)
	log.Debug().Stringer("machine", machine).Msg("Machine set up")
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(cmd *cobra.Command, encode bool) (io.ReadCloser, io.WriteCloser) {
	var fin io.ReadCloser
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = io.NopCloser(cmd.InOrStdin())
	}

	var fout io.WriteCloser
	stdout := nopWriteCloser{cmd.OutOrStdout()}

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if inputFileName == "-" || inputFileName == "" {
		fout = stdout
	} else if encode {
		outputFileName = inputFileName + enigmaSuffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, enigmaSuffix) {
			outputFileName = strings.TrimSuffix(inputFileName, enigmaSuffix)
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = stdout
		}
	}
	log.Debug().Str("input", inputFileName).Str("output", outputFileName).Msg("Files selected")
	return fin, fout
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
