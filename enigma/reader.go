package enigma

import (
	"bufio"
	"io"
	"unicode/utf8"
)

type reader struct {
	m   *Machine
	src *bufio.Reader
	buf []byte
	err error
}

// NewReader returns a reader that enciphers everything read from src with m.
// Input is decoded rune by rune, so multi-byte characters and bytes that are
// not valid UTF-8 pass through intact.  It returns as soon as the data already buffered from src is
// used up, which keeps interactive input flowing line by line.
func (m *Machine) NewReader(src io.Reader) io.Reader {
	return &reader{m: m, src: bufio.NewReader(src)}
}

func (r *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(r.buf) < len(p) && r.err == nil {
		if len(r.buf) > 0 && r.src.Buffered() == 0 {
			break
		}
		c, size, err := r.src.ReadRune()
		if err != nil {
			r.err = err
			break
		}
		if c == utf8.RuneError && size == 1 {
			_ = r.src.UnreadRune()
			b, _ := r.src.ReadByte()
			r.buf = append(r.buf, b)
			continue
		}
		r.buf = utf8.AppendRune(r.buf, r.m.ProcessRune(c))
	}
	n := copy(p, r.buf)
	r.buf = r.buf[:copy(r.buf, r.buf[n:])]
	if n == 0 && r.err != nil {
		return 0, r.err
	}
	return n, nil
}
