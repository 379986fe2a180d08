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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keyboardCmd represents the keyboard command
var keyboardCmd = &cobra.Command{
	Use:   "keyboard",
	Short: "Type on the machine one line at a time",
	Long: `keyboard reads lines from standard input and shows the lamps that light for
each of them.  The rotors keep turning from one line to the next, just as they
would for an operator typing a long message.`,
	Run: func(cmd *cobra.Command, args []string) {
		initMachine()
		interactive := false
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			interactive = term.IsTerminal(int(f.Fd()))
		}
		cobra.CheckErr(keyboard(cmd.InOrStdin(), cmd.OutOrStdout(), interactive))
	},
}

func init() {
	rootCmd.AddCommand(keyboardCmd)
}

// keyboard enciphers in line by line.  When prompt is set the rotor window
// letters are shown before every line.
func keyboard(in io.Reader, out io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(out, "%s> ", machine.Indicator())
		}
		if !scanner.Scan() {
			break
		}
		if _, err := fmt.Fprintln(out, machine.Process(scanner.Text())); err != nil {
			return err
		}
	}
	if prompt {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}
