package rapidbase64

import "io"

type readBuffer struct {
	buf        []byte
	start, end int
	eof        bool // upstream returned io.EOF
}

func (rb *readBuffer) init(size int) {
	if rb.buf != nil {
		return
	}
	if rem := size % encodedGroupSize; rem != 0 {
		size += encodedGroupSize - rem
	}
	rb.buf = make([]byte, size)
}

func (rb *readBuffer) window() []byte {
	return rb.buf[rb.start:rb.end]
}

func (rb *readBuffer) advance(consumed int) {
	if consumed <= 0 {
		return
	}
	rb.start += consumed
	if rb.start >= rb.end {
		rb.start, rb.end = 0, 0
	}
}

func (rb *readBuffer) compact() {
	if rb.start == 0 || rb.start == rb.end {
		return
	}
	copy(rb.buf, rb.buf[rb.start:rb.end])
	rb.end -= rb.start
	rb.start = 0
}

func (rb *readBuffer) reset() {
	rb.start, rb.end = 0, 0
	rb.eof = false
}

// fill reads from r until the window holds at least need bytes. It returns
// io.EOF only once the input ends before need bytes are available; whatever
// was read is kept in the window either way. Other read errors pass through
// with the window intact so the caller can retry.
func (rb *readBuffer) fill(r io.Reader, need int) error {
	if rb.eof {
		if rb.end-rb.start >= need {
			return nil
		}
		return io.EOF
	}
	for rb.end-rb.start < need {
		if rb.end == len(rb.buf) {
			rb.compact()
		}
		n, err := r.Read(rb.buf[rb.end:])
		if n > 0 {
			rb.end += n
		}
		if err != nil {
			if err == io.EOF {
				rb.eof = true
				if rb.end-rb.start >= need {
					return nil
				}
			}
			return err
		}
	}
	return nil
}
