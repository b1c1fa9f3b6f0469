package logio_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jcorbin/goeacal/internal/logio"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	var log logio.Logger
	log.SetOutput(&out)

	log.Printf("TRACE", "exec %v", "print")
	assert.Equal(t, 0, log.ExitCode(), "trace must not fail")

	log.Failf("%v: Error: %v", 3, `"foo" is not a valid command.`)
	assert.Equal(t, 1, log.ExitCode(), "expected failure")

	log.Errorf("done")
	assert.Equal(t, strings.Join([]string{
		"TRACE: exec print",
		`3: Error: "foo" is not a valid command.`,
		"ERROR: done",
		"",
	}, "\n"), out.String())
}

func TestWriter(t *testing.T) {
	var got []string
	w := logio.Writer{Logf: func(mess string, args ...interface{}) {
		got = append(got, fmt.Sprintf(mess, args...))
	}}
	w.Write([]byte("one\ntw"))
	w.Write([]byte("o\nthree"))
	assert.Equal(t, []string{"one", "two"}, got, "expected only complete lines")
	assert.NoError(t, w.Close())
	assert.Equal(t, []string{"one", "two", "three"}, got, "expected final partial line")
}
