package rapidbase64

import (
	"errors"
	"fmt"
)

// padByte terminates an encoded stream whose final group carries fewer than
// three bytes of data. Alphabets never contain it.
const padByte = '='

var ErrInvalidAlphabet = errors.New("invalid alphabet")

// Alphabet is an ordered set of 64 symbols mapping the values 0-63 to bytes
// of encoded text.
type Alphabet struct {
	symbols [64]byte
}

// NewAlphabet builds an [Alphabet] from a string of exactly 64 distinct
// printable ASCII symbols. '=', CR and LF are reserved and rejected.
// Errors wrap [ErrInvalidAlphabet].
func NewAlphabet(symbols string) (Alphabet, error) {
	var a Alphabet
	if len(symbols) != 64 {
		return a, fmt.Errorf("%w: need 64 symbols, have %d", ErrInvalidAlphabet, len(symbols))
	}

	var seen [256]bool
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		switch {
		case c == padByte || c == '\r' || c == '\n':
			return a, fmt.Errorf("%w: symbol %q is reserved", ErrInvalidAlphabet, c)
		case c < '!' || c > '~':
			return a, fmt.Errorf("%w: symbol %#02x is not printable ASCII", ErrInvalidAlphabet, c)
		case seen[c]:
			return a, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, c)
		}
		seen[c] = true
		a.symbols[i] = c
	}

	return a, nil
}

// String returns the 64 symbols in value order.
func (a Alphabet) String() string {
	return string(a.symbols[:])
}

func mustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

var (
	// StdAlphabet is the standard alphabet of RFC 4648.
	StdAlphabet = mustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

	// URLAlphabet is the URL- and filename-safe alphabet of RFC 4648.
	URLAlphabet = mustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
)
