package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/CraigFe/tezos/metrics"
	"github.com/CraigFe/tezos/types"
)

// flushThreshold is the high-water mark of the output buffer. The writer
// flushes whenever the buffered bytes exceed it, and unconditionally at
// stream end.
const flushThreshold = 1 << 20

// frameWriter accumulates length-prefixed frames in memory and spills them
// to the descriptor in large writes.
type frameWriter struct {
	out     io.Writer
	buf     []byte
	written int64
}

func newFrameWriter(out io.Writer) *frameWriter {
	return &frameWriter{
		out: out,
		buf: make([]byte, 0, flushThreshold+flushThreshold/4),
	}
}

// writeFrame appends one frame (u64 big-endian length then payload) and
// flushes if the buffer runs past the high-water mark.
func (w *frameWriter) writeFrame(payload []byte) error {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(payload)))
	w.buf = append(w.buf, length[:]...)
	w.buf = append(w.buf, payload...)
	w.written += int64(len(length) + len(payload))
	if len(w.buf) > flushThreshold {
		return w.flush()
	}
	return nil
}

func (w *frameWriter) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	n, err := w.out.Write(w.buf)
	if err != nil {
		return types.SystemWriteError{Err: err}
	}
	metrics.SnapshotBytesWrittenAdd(n)
	w.buf = w.buf[:0]
	return nil
}

// bytesOut is the running total of frame bytes accepted, exposed for
// progress reporting.
func (w *frameWriter) bytesOut() int64 {
	return w.written
}
