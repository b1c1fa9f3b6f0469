// Package fileinput reads program lines sequentially from a queue of input
// streams, tracking where each line came from.
package fileinput

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/goeacal/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is one line of program text, without its terminator.
type Line struct {
	Location
	Text string
}

func (il Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Carriage returns before a line feed are dropped.
type Input struct {
	Queue []io.Reader

	r    io.Reader
	rr   io.RuneReader
	loc  Location
	scan strings.Builder
}

// ReadLine reads the next line, moving on through the Queue as each stream
// is exhausted; streams that implement io.Closer are closed once done.
// A final line lacking a line feed is still returned.
// Returns io.EOF once every stream has been consumed.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return Line{}, io.EOF
		}

		r, _, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				return in.nextLine(), nil
			}
			in.scan.WriteRune(r)
			continue
		}

		pending := in.scan.Len() > 0
		var line Line
		if pending {
			line = in.nextLine()
		}
		in.closeIn()
		if err != io.EOF {
			return line, err
		}
		if pending {
			return line, nil
		}
	}
}

func (in *Input) nextLine() Line {
	line := Line{in.loc, strings.TrimSuffix(in.scan.String(), "\r")}
	in.scan.Reset()
	in.loc.Line++
	return line
}

func (in *Input) closeIn() {
	if cl, ok := in.r.(io.Closer); ok {
		cl.Close()
	}
	in.r, in.rr = nil, nil
}

func (in *Input) nextIn() bool {
	in.closeIn()
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.r = r
		in.rr = runeio.NewReader(r)
		in.loc.Name = nameOf(r)
		in.loc.Line = 1
	}
	return in.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
