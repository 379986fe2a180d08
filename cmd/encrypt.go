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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	useASCII85  bool
	usePem      bool
	usePlain    bool
	compression bool
	groupSize   int
)

const (
	pemType      = "ENIGMA Encrypted Message"
	headerPrefix = "+ENIGMA"
)

var ErrArmorWithArgs = errors.New("encrypt: --usePem, --useASCII85 and --compress only apply to file input")

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [text...]",
	Short: "Encrypt plaintext using the Enigma machine",
	Long: `Encrypt plaintext using the Enigma machine.  The text is taken from the
command line arguments if there are any, otherwise from the input file.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && (usePem || useASCII85 || compression) {
			return ErrArmorWithArgs
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if usePem {
			useASCII85 = false
		}
		usePlain = !(useASCII85 || usePem)
		encrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress the ciphertext using flate")
	encryptCmd.Flags().IntVarP(&groupSize, "group", "g", 0, `write the ciphertext in groups of this many letters
Everything that is not a letter is dropped from grouped output.`)
}

// cipherHelper runs everything read from rdr through the machine.  The
// result can be read using the returned PipeReader.
func cipherHelper(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := io.Copy(rWrtr, machine.NewReader(rdr))
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

func encrypt(cmd *cobra.Command, args []string) {
	initMachine()
	if len(args) > 0 {
		text := machine.Process(strings.Join(args, " "))
		if groupSize > 0 {
			text = group(text, groupSize)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return
	}

	// The indicator has to be captured before any text moves the rotors.
	indicator := machine.Indicator()
	fin, fout := getInputAndOutputFiles(cmd, true)
	defer fin.Close()
	defer fout.Close()

	var encIn *io.PipeReader = cipherHelper(fin)
	if groupSize > 0 {
		encIn = groupHelper(encIn, groupSize)
	}
	if compression {
		encIn = flate.ToFlate(encIn)
	}

	var blck pem.Block
	if usePem {
		blck.Headers = make(map[string]string)
		blck.Type = pemType
		blck.Headers["Indicator"] = indicator
		if len(inputFileName) > 0 && inputFileName != "-" {
			blck.Headers["FileName"] = inputFileName
		}
		blck.Headers["Compression"] = fmt.Sprintf("%v", compression)
	} else if useASCII85 || compression {
		headerLine := fmt.Sprintf("%s|", headerPrefix)
		if len(inputFileName) > 0 && inputFileName != "-" {
			headerLine += inputFileName
		}
		if useASCII85 {
			headerLine += "|a"
		} else {
			headerLine += "|b"
		}
		headerLine += fmt.Sprintf("|%v|%s\n", compression, indicator)
		_, err := io.WriteString(fout, headerLine)
		checkError(err)
	}
	log.Info().Str("indicator", indicator).Bool("pem", usePem).Bool("ascii85", useASCII85).
		Bool("compress", compression).Msg("Encrypting")

	var err error
	if usePlain {
		_, err = io.Copy(fout, encIn)
	} else if useASCII85 {
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encIn)))
	} else {
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), blck))
	}
	checkError(err)
	wg.Wait()
}
