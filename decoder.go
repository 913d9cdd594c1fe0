package rapidbase64

import (
	"errors"
	"io"
)

const defaultBufferSize = 1024

// decoderState tracks where the Decoder is in the stream: consuming groups,
// done after a terminal group or clean end of input, or stopped on a
// latched *DecodeError.
type decoderState int

const (
	stateActive decoderState = iota
	stateFinished
	stateFailed
)

// Decoder decodes base64 incrementally from an io.Reader.
//
// Read reports the identical decoded bytes and the identical failure, with
// the same kind, offset and offending byte, as a whole-input Decode of the
// same stream, no matter how the upstream reader or the consumer slice
// their reads.
type Decoder struct {
	engine Engine
	r      io.Reader

	rb readBuffer

	// Decoded bytes produced but not yet returned by Read.
	dec              []byte
	decStart, decEnd int

	offset  int64 // encoded bytes consumed so far
	state   decoderState
	err     error
	bufSize int
}

type DecoderOption func(d *Decoder)

// NewDecoder returns a Decoder that reads base64 from r and yields the
// decoded bytes through Read.
func NewDecoder(engine Engine, r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{engine: engine, r: r}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// WithBufferSize sets the size of the input buffer, rounded up to a whole
// number of 4-symbol groups. Smaller buffers trade throughput for memory;
// decoding behaves identically at any size.
func WithBufferSize(size int) DecoderOption {
	return func(d *Decoder) {
		if size < 1 {
			panic("rapidbase64: buffer size must be positive")
		}
		d.bufSize = size
	}
}

// Reset discards all state, keeping the allocated buffers, and switches the
// Decoder to reading from r.
func (d *Decoder) Reset(r io.Reader) {
	d.r = r
	d.rb.reset()
	d.decStart, d.decEnd = 0, 0
	d.offset = 0
	d.state = stateActive
	d.err = nil
}

func (d *Decoder) init() {
	if d.dec != nil {
		return
	}
	size := d.bufSize
	if size <= 0 {
		size = defaultBufferSize
	}
	d.rb.init(size)
	d.dec = make([]byte, len(d.rb.buf)/encodedGroupSize*decodedGroupSize)
}

// Read implements io.Reader.
//
// Decoded bytes buffered by an earlier call are drained before any stored
// failure surfaces, so the data delivered ahead of an error does not depend
// on read slicing. After a clean end of stream Read keeps returning io.EOF;
// after a decode failure it keeps returning the same *DecodeError. Errors
// from the upstream reader are returned as-is and the next call retries.
func (d *Decoder) Read(p []byte) (int, error) {
	d.init()

	if d.decStart < d.decEnd {
		n := copy(p, d.dec[d.decStart:d.decEnd])
		d.decStart += n
		if d.decStart == d.decEnd {
			d.decStart, d.decEnd = 0, 0
		}
		return n, nil
	}

	if d.state == stateFailed {
		return 0, d.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if d.state == stateFinished {
			return 0, d.confirmEOF()
		}

		ferr := d.rb.fill(d.r, encodedGroupSize)
		if ferr != nil && ferr != io.EOF {
			return 0, ferr
		}
		window := d.rb.window()
		if len(window) == 0 {
			d.state = stateFinished
			continue
		}

		nDst, nSrc, terminated, derr := d.engine.DecodeBlock(d.dec, window, ferr == io.EOF)
		if derr != nil {
			d.fail(d.traceErr(derr))
		} else if terminated || ferr == io.EOF {
			d.state = stateFinished
		}
		d.rb.advance(nSrc)
		d.offset += int64(nSrc)

		if nDst > 0 {
			n := copy(p, d.dec[:nDst])
			if n < nDst {
				d.decStart, d.decEnd = n, nDst
			}
			return n, nil
		}
		if d.state == stateFailed {
			return 0, d.err
		}
	}
}

// confirmEOF polices the stream end: anything left in the window, or still
// readable upstream, after the terminal group is trailing data.
func (d *Decoder) confirmEOF() error {
	if d.rb.start == d.rb.end && !d.rb.eof {
		if err := d.rb.fill(d.r, 1); err != nil && err != io.EOF {
			return err
		}
	}
	if d.rb.start < d.rb.end {
		d.fail(&DecodeError{Off: d.offset, Byte: d.rb.buf[d.rb.start], Kind: ErrTrailingData})
		return d.err
	}
	return io.EOF
}

// traceErr rebases a block-relative decode error onto the stream offset.
func (d *Decoder) traceErr(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Off: d.offset + de.Off, Byte: de.Byte, Kind: de.Kind}
	}
	return err
}

func (d *Decoder) fail(err error) {
	d.state = stateFailed
	d.err = err
}
