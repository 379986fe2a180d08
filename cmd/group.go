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
	"io"
	"strings"

	"github.com/bgallie/enigma/cryptors"
)

// groupsPerLine is the number of letter groups written on each line.
const groupsPerLine = 10

// grouper lays ciphertext out in the traditional blocks of letters.  Runes
// that are not letters are dropped.
type grouper struct {
	size    int
	letters int
	groups  int
}

func (g *grouper) add(w *bufio.Writer, r rune) error {
	if _, ok := cryptors.Index(r); !ok {
		return nil
	}
	if g.letters == g.size {
		g.letters = 0
		g.groups++
		sep := ' '
		if g.groups == groupsPerLine {
			g.groups = 0
			sep = '\n'
		}
		if _, err := w.WriteRune(sep); err != nil {
			return err
		}
	}
	g.letters++
	_, err := w.WriteRune(r)
	return err
}

// group returns the letters of text in groups of size.
func group(text string, size int) string {
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	g := grouper{size: size}
	for _, r := range text {
		_ = g.add(w, r)
	}
	_ = w.Flush()
	return sb.String()
}

// groupHelper provides the letters read from rdr in groups of size.  The
// grouped text ends with a newline if any letters were written.
func groupHelper(rdr io.Reader, size int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		bRdr := bufio.NewReader(rdr)
		w := bufio.NewWriter(rWrtr)
		g := grouper{size: size}
		var err error
		for {
			var r rune
			r, _, err = bRdr.ReadRune()
			if err != nil {
				break
			}
			if err = g.add(w, r); err != nil {
				break
			}
		}
		if err == io.EOF {
			err = nil
			if g.letters > 0 {
				_, err = w.WriteRune('\n')
			}
		}
		if err == nil {
			err = w.Flush()
		}
		rWrtr.CloseWithError(err)
	}()
	return rRdr
}
