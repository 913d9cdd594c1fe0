package rapidbase64

// Four encoded symbols carry three bytes of data.
const (
	encodedGroupSize = 4
	decodedGroupSize = 3
)

// invalidSymbol marks decodeMap entries outside the alphabet. The padding
// byte also maps to it; the decoder tells the two apart by inspecting the
// input byte.
const invalidSymbol = 0xff

// Engine transcodes bounded blocks of data for one alphabet and padding
// policy. The streaming [Decoder] and [Encoder] depend only on this
// capability and are bound to a variant at construction time.
//
// Implementations must be safe for use by independent streams concurrently.
type Engine interface {
	// DecodeBlock decodes complete four-symbol groups from src into dst,
	// left to right, reporting how much of each buffer it used. It stops
	// after consuming a padded terminal group (terminated true) and leaves
	// an incomplete trailing group unconsumed, unless final is true, in
	// which case the short tail is decoded as the end of the stream.
	//
	// dst must have room for DecodedLen(len(src)) bytes. nDst and nSrc are
	// valid even when err is non-nil; err is a *DecodeError whose offset is
	// relative to src.
	DecodeBlock(dst, src []byte, final bool) (nDst, nSrc int, terminated bool, err error)

	// EncodeBlock encodes complete three-byte units from src into dst,
	// reporting how much of each buffer it used. A one or two byte tail is
	// left unconsumed unless final is true, in which case it becomes the
	// (possibly padded) terminal group.
	//
	// dst must have room for EncodedLen(len(src)) bytes.
	EncodeBlock(dst, src []byte, final bool) (nDst, nSrc int)

	// Padded reports whether encoded output ends with '=' padding.
	Padded() bool
}

// Encoding is the portable scalar [Engine]: a pair of lookup tables built
// from an alphabet, plus a padding policy.
//
// Decoding accepts canonically padded and unpadded input alike, regardless
// of the encode-side policy; padding that is present must be well formed.
type Encoding struct {
	encodeMap         [64]byte
	decodeMap         [256]byte
	padded            bool
	allowTrailingBits bool
}

// Option configures an [Encoding].
type Option func(*Encoding)

// WithoutPadding makes encoded output omit the trailing '=' padding.
func WithoutPadding() Option {
	return func(e *Encoding) {
		e.padded = false
	}
}

// AllowTrailingBits makes decoding accept a final symbol whose unused low
// bits are not zero instead of rejecting it.
func AllowTrailingBits() Option {
	return func(e *Encoding) {
		e.allowTrailingBits = true
	}
}

// NewEncoding builds an [Encoding] for the given alphabet. By default
// encoded output is padded and decoding rejects non-zero trailing bits.
func NewEncoding(alphabet Alphabet, opts ...Option) *Encoding {
	e := &Encoding{padded: true}
	copy(e.encodeMap[:], alphabet.symbols[:])

	for i := range e.decodeMap {
		e.decodeMap[i] = invalidSymbol
	}
	for i, c := range alphabet.symbols {
		e.decodeMap[c] = byte(i)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

var (
	// StdEncoding is the standard, padded base64 encoding.
	StdEncoding = NewEncoding(StdAlphabet)

	// RawStdEncoding is the standard alphabet without padding.
	RawStdEncoding = NewEncoding(StdAlphabet, WithoutPadding())

	// URLEncoding is the URL-safe, padded encoding.
	URLEncoding = NewEncoding(URLAlphabet)

	// RawURLEncoding is the URL-safe alphabet without padding.
	RawURLEncoding = NewEncoding(URLAlphabet, WithoutPadding())
)

// Padded implements [Engine].
func (e *Encoding) Padded() bool {
	return e.padded
}

// EncodedLen returns the encoded length of n bytes of data.
func (e *Encoding) EncodedLen(n int) int {
	if e.padded {
		return (n + decodedGroupSize - 1) / decodedGroupSize * encodedGroupSize
	}
	return (n*8 + 5) / 6
}

// DecodedLen returns the maximum decoded length of n bytes of encoded
// input, an upper bound valid for padded and unpadded input alike.
func (e *Encoding) DecodedLen(n int) int {
	return n * 6 / 8
}
