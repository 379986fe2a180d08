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
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [text...]",
	Short: "Decrypt ciphertext using the Enigma machine",
	Long: `Decrypt ciphertext produced by the encrypt command, or by any Enigma I set
up with the same key.  PEM and ASCII85 encoded input is recognised and the
rotor start positions are taken from its header.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

// fromBinaryHelper provides the means to inject the pure binary input
// into the pipe stream used by the decrypt() function.  The data can
// be read using the returned PipeReader.
func fromBinaryHelper(rdr io.Reader) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := io.Copy(rWrtr, rdr)
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}

// transcript describes how the ciphertext was written by encrypt.
type transcript struct {
	format      byte // 'p'lain, 'a'scii85, 'b'inary or 'P'EM
	fileName    string
	compression bool
	indicator   string
}

// parseHeaderLine reads the "+ENIGMA|name|a|compression|indicator" line
// written in front of ASCII85 and compressed ciphertext.
func parseHeaderLine(line string) (transcript, error) {
	var t transcript
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) != 5 || fields[0] != headerPrefix {
		return t, fmt.Errorf("malformed header line: %q", line)
	}
	t.fileName = fields[1]
	switch fields[2] {
	case "a", "b":
		t.format = fields[2][0]
	default:
		return t, fmt.Errorf("unknown encoding %q in header line", fields[2])
	}
	t.compression = fields[3] == "true"
	t.indicator = fields[4]
	return t, nil
}

func decrypt(cmd *cobra.Command, args []string) {
	initMachine()
	if len(args) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), machine.Process(strings.Join(args, " ")))
		return
	}

	fin, fout := getInputAndOutputFiles(cmd, false)
	defer fin.Close()
	defer func() { fout.Close() }()
	bRdr := bufio.NewReader(fin)
	b, _ := bRdr.Peek(len(headerPrefix) + 1)

	var t transcript
	var pRdr *io.PipeReader
	var err error
	switch {
	case bytes.HasPrefix(b, []byte("-----")):
		var blck pem.Block
		pRdr, blck = pem.FromPem(bRdr)
		t.format = 'P'
		t.fileName = blck.Headers["FileName"]
		t.compression = blck.Headers["Compression"] == "true"
		t.indicator = blck.Headers["Indicator"]
	case bytes.HasPrefix(b, []byte(headerPrefix+"|")):
		var line string
		line, err = bRdr.ReadString('\n')
		checkError(err)
		t, err = parseHeaderLine(line)
		cobra.CheckErr(err)
	default:
		t.format = 'p'
	}

	if t.indicator != "" {
		cobra.CheckErr(machine.SetIndicator(t.indicator))
	}
	if len(outputFileName) == 0 && len(t.fileName) > 0 {
		fout, err = os.Create(t.fileName)
		cobra.CheckErr(err)
	}
	log.Info().Str("indicator", machine.Indicator()).Str("format", string(t.format)).
		Bool("compress", t.compression).Msg("Decrypting")

	var aRdr *io.PipeReader
	switch t.format {
	case 'P':
		aRdr = pRdr
	case 'a':
		aRdr = ascii85.FromASCII85(lines.CombineLines(bRdr))
	default:
		aRdr = fromBinaryHelper(bRdr)
	}
	if t.compression {
		aRdr = flate.FromFlate(aRdr)
	}
	_, err = io.Copy(fout, cipherHelper(aRdr))
	checkError(err)
	wg.Wait() // Wait for the pipeline to finish it's clean up.
}
