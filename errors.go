package rapidbase64

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A [DecodeError] wraps exactly one of these, so
// errors.Is classifies a failure without inspecting the struct.
var (
	// ErrInvalidByte reports a byte outside the alphabet.
	ErrInvalidByte = errors.New("invalid symbol")

	// ErrInvalidLastByte reports a final symbol whose unused low bits are
	// not zero, so no byte sequence could have produced it.
	ErrInvalidLastByte = errors.New("invalid final symbol")

	// ErrInvalidPadding reports a malformed terminal group: padding in an
	// impossible position, or a terminal group whose remaining symbols do
	// not agree with its padding.
	ErrInvalidPadding = errors.New("malformed padding")

	// ErrInvalidLength reports an encoded length no stream can have: a
	// single dangling symbol at the end of input.
	ErrInvalidLength = errors.New("invalid encoded length")

	// ErrTrailingData reports input following a padded terminal group.
	ErrTrailingData = errors.New("trailing data after terminal padding")
)

// DecodeError describes the first malformed byte of an encoded stream.
// Offsets are absolute: a [Decoder] reports the same Off for a given stream
// no matter how the reads were sliced, and it equals the offset a
// whole-buffer [Encoding.Decode] of the same bytes reports.
type DecodeError struct {
	Off  int64 // offset of the offending byte within the encoded stream
	Byte byte  // the byte at Off
	Kind error // one of the Err* kind sentinels above
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: byte %q at offset %d", e.Kind, e.Byte, e.Off)
}

// Unwrap returns the kind sentinel, making errors.Is work on a DecodeError.
func (e *DecodeError) Unwrap() error {
	return e.Kind
}
