package types

import (
	"errors"
	"fmt"

	"github.com/CraigFe/tezos/libs/bincodec"
)

// SnapshotVersion is the literal version string written in the metadata
// frame. Any mismatch on import is a hard reject.
const SnapshotVersion = "tezos-snapshot-1.0.0"

// Metadata is the first frame of every snapshot: the format version plus
// the history mode the snapshot was taken under.
type Metadata struct {
	Version string
	Mode    HistoryMode
}

func (m Metadata) MarshalBinary() ([]byte, error) {
	mode, err := m.Mode.wire()
	if err != nil {
		return nil, err
	}
	b := bincodec.AppendString(nil, m.Version)
	b = bincodec.AppendByte(b, mode)
	return b, nil
}

func (m *Metadata) UnmarshalBinary(data []byte) error {
	r := bincodec.NewReader(data)
	version, err := r.String()
	if err != nil {
		return err
	}
	wire, err := r.Byte()
	if err != nil {
		return err
	}
	mode, err := historyModeFromWire(wire)
	if err != nil {
		return err
	}
	m.Version = version
	m.Mode = mode
	return nil
}

var (
	// ErrInconsistentSnapshotFile signals a short read, a bad command tag
	// or a malformed frame.
	ErrInconsistentSnapshotFile = errors.New("inconsistent snapshot file")
	// ErrInconsistentSnapshotData signals well formed bytes that are
	// semantically wrong, such as a command arriving in the wrong phase.
	ErrInconsistentSnapshotData = errors.New("inconsistent snapshot data")
	// ErrMissingSnapshotData signals EOF before the end marker while
	// commands were still expected.
	ErrMissingSnapshotData = errors.New("missing data in snapshot file")
	// ErrRestoreContextFailure signals a directory entry referencing a
	// hash that was never installed, i.e. structural corruption.
	ErrRestoreContextFailure = errors.New("unable to restore context from snapshot")
)

// InvalidSnapshotVersionError is returned when the metadata frame carries
// an unexpected version string.
type InvalidSnapshotVersionError struct {
	Got      string
	Expected string
}

func (e InvalidSnapshotVersionError) Error() string {
	return fmt.Sprintf("invalid snapshot version %q, expected %q", e.Got, e.Expected)
}

// ContextNotFoundError is returned when no context is attached to the
// block header a snapshot export was requested for.
type ContextNotFoundError struct {
	Header []byte
}

func (e ContextNotFoundError) Error() string {
	return fmt.Sprintf("no context found for block header (%d bytes)", len(e.Header))
}

// BadHashError reports a hash verification failure in the store layer.
type BadHashError struct {
	Kind     string
	Got      Hash
	Expected Hash
}

func (e BadHashError) Error() string {
	return fmt.Sprintf("bad %s hash, got %s, expected %s", e.Kind, e.Got, e.Expected)
}

// SystemReadError wraps an OS error raised while reading the snapshot
// descriptor.
type SystemReadError struct {
	Err error
}

func (e SystemReadError) Error() string {
	return fmt.Sprintf("system read error: %v", e.Err)
}

func (e SystemReadError) Unwrap() error {
	return e.Err
}

// SystemWriteError wraps an OS error raised while writing the snapshot
// descriptor.
type SystemWriteError struct {
	Err error
}

func (e SystemWriteError) Error() string {
	return fmt.Sprintf("system write error: %v", e.Err)
}

func (e SystemWriteError) Unwrap() error {
	return e.Err
}
