// Package runeio provides rune-level reading of program sources, and ANSI
// normalized writing of program output.
package runeio

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader is an io.Reader that also supports reading runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns a Reader from r; if r already implements, it is simply returned.
// Otherwise bufio.Reader is used to provide rune reading around the given reader.
// If the r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	rr := runeReader{r, bufio.NewReader(r)}
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedRuneReader{rr, impl.Name()}
	}
	return rr
}

type runeReader struct {
	io.Reader
	io.RuneReader
}

type namedRuneReader struct {
	Reader
	name string
}

func (nr namedRuneReader) Name() string { return nr.name }

// AppendANSI appends the ANSI form of r to buf:
// - NEL is written as the more conventional \r\n
// - all other C1 controls are written in their classic 7-bit form
//   e.g. "\x9b" "\x1b\x5b" for CSI
// - all other runes are written in utf8 form
func AppendANSI(buf []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(buf, byte(r))
	case r == 0x85:
		return append(buf, '\r', '\n')
	case r <= 0x9f:
		return append(buf, 0x1b, byte(r^0xc0))
	default:
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		return append(buf, tmp[:n]...)
	}
}

// WriteANSIString writes s to w in a single write, after converting each rune
// through AppendANSI.
func WriteANSIString(w io.Writer, s string) (n int, err error) {
	if !strings.ContainsFunc(s, isC1) {
		return io.WriteString(w, s)
	}
	buf := make([]byte, 0, len(s)+8)
	for _, r := range s {
		buf = AppendANSI(buf, r)
	}
	return w.Write(buf)
}

func isC1(r rune) bool { return 0x80 <= r && r <= 0x9f }
