package rapidbase64

import (
	"errors"
	"io"
)

const encoderBufferSize = 1024

var errWriterNil = errors.New("writer is nil")

// Encoder is an io.WriteCloser that base64-encodes everything written to it
// onto an underlying writer.
type Encoder struct {
	engine Engine
	w      io.Writer
	err    error

	fringe  [decodedGroupSize]byte
	nFringe int

	out [encoderBufferSize]byte
}

// NewEncoder returns a new [Encoder]. Writes to the returned writer are
// encoded and written to w.
//
// It is the caller's responsibility to call Close on the [Encoder] when
// done: the final group cannot be emitted until the input is known to have
// ended.
func NewEncoder(engine Engine, w io.Writer) *Encoder {
	return &Encoder{engine: engine, w: w}
}

// Reset discards the [Encoder] e's state and makes it equivalent to the
// result of [NewEncoder] with the same engine, but writing to w instead.
// This permits reusing an [Encoder] rather than allocating a new one.
func (e *Encoder) Reset(w io.Writer) {
	e.w = w
	e.err = nil
	e.nFringe = 0
}

// Write writes the base64 encoding of p to the underlying [io.Writer]. A
// remainder shorter than a whole 3-byte unit is held back until the next
// Write or Close.
func (e *Encoder) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.w == nil {
		return 0, errWriterNil
	}

	// Top up a fringe left by the previous Write.
	if e.nFringe > 0 {
		c := copy(e.fringe[e.nFringe:], p)
		e.nFringe += c
		p = p[c:]
		n += c
		if e.nFringe < decodedGroupSize {
			return n, nil
		}
		nDst, _ := e.engine.EncodeBlock(e.out[:], e.fringe[:], false)
		e.nFringe = 0
		if err := e.flush(e.out[:nDst]); err != nil {
			return n, err
		}
	}

	// Whole units straight from p, one staging buffer at a time.
	for len(p) >= decodedGroupSize {
		chunk := min(len(e.out)/encodedGroupSize*decodedGroupSize, len(p)-len(p)%decodedGroupSize)
		nDst, nSrc := e.engine.EncodeBlock(e.out[:], p[:chunk], false)
		if err := e.flush(e.out[:nDst]); err != nil {
			return n, err
		}
		p = p[nSrc:]
		n += nSrc
	}

	n += copy(e.fringe[:], p)
	e.nFringe = len(p)
	return n, nil
}

// Close flushes any held-back remainder as a terminal group. It is an error
// to call Write after calling Close.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.w == nil {
		return errWriterNil
	}
	defer func() { e.w = nil }()

	if e.nFringe == 0 {
		return nil
	}
	nDst, _ := e.engine.EncodeBlock(e.out[:], e.fringe[:e.nFringe], true)
	e.nFringe = 0
	return e.flush(e.out[:nDst])
}

func (e *Encoder) flush(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = err
		return err
	}
	return nil
}
