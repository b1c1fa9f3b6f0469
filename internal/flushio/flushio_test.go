package flushio_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/goeacal/internal/flushio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.writes++
	return cw.Buffer.Write(p)
}

func TestNewWriteFlusher(t *testing.T) {
	assert.Equal(t, flushio.Discard, flushio.NewWriteFlusher(io.Discard))
	assert.Equal(t, flushio.Discard, flushio.NewWriteFlusher(nil))

	var sb strings.Builder
	wf := flushio.NewWriteFlusher(&sb)
	io.WriteString(wf, "hello")
	assert.Equal(t, "hello", sb.String(), "buffers are written through")

	// plain writers get buffered
	var cw countingWriter
	wf = flushio.NewWriteFlusher(struct{ io.Writer }{&cw})
	io.WriteString(wf, "a")
	io.WriteString(wf, "b")
	assert.Equal(t, 0, cw.writes, "expected buffering")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "ab", cw.String())
	assert.Equal(t, 1, cw.writes, "expected one flushed write")
}

func TestWriteFlushers(t *testing.T) {
	var a, b strings.Builder
	wf := flushio.WriteFlushers(
		flushio.NewWriteFlusher(&a),
		flushio.Discard,
		flushio.WriteFlushers(flushio.NewWriteFlusher(&b)),
	)
	io.WriteString(wf, "tee")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "tee", a.String())
	assert.Equal(t, "tee", b.String())

	assert.Nil(t, flushio.WriteFlushers())
	assert.Equal(t, flushio.Discard, flushio.NewWriteFlusher(io.Discard))
}
