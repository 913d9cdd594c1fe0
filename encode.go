package rapidbase64

import "slices"

// EncodeBlock implements [Engine] with the portable scalar encoder.
//
// Whole 3-byte units encode until src runs out; a shorter remainder is
// consumed only when final is true, emitting a terminal group (padded or
// not, per the encoding). Otherwise the remainder is left for the caller to
// carry into the next block.
func (e *Encoding) EncodeBlock(dst, src []byte, final bool) (nDst, nSrc int) {
	for nSrc+decodedGroupSize <= len(src) {
		v := uint32(src[nSrc])<<16 | uint32(src[nSrc+1])<<8 | uint32(src[nSrc+2])
		dst[nDst] = e.encodeMap[v>>18&0x3f]
		dst[nDst+1] = e.encodeMap[v>>12&0x3f]
		dst[nDst+2] = e.encodeMap[v>>6&0x3f]
		dst[nDst+3] = e.encodeMap[v&0x3f]
		nDst += encodedGroupSize
		nSrc += decodedGroupSize
	}

	if !final || nSrc == len(src) {
		return nDst, nSrc
	}

	remain := len(src) - nSrc
	v := uint32(src[nSrc]) << 16
	if remain == 2 {
		v |= uint32(src[nSrc+1]) << 8
	}
	dst[nDst] = e.encodeMap[v>>18&0x3f]
	dst[nDst+1] = e.encodeMap[v>>12&0x3f]
	nDst += 2
	if remain == 2 {
		dst[nDst] = e.encodeMap[v>>6&0x3f]
		nDst++
	}
	if e.padded {
		if remain == 1 {
			dst[nDst] = padByte
			nDst++
		}
		dst[nDst] = padByte
		nDst++
	}
	return nDst, len(src)
}

// Encode encodes src into dst, which must be at least EncodedLen(len(src))
// bytes, and returns the number of bytes written.
func (e *Encoding) Encode(dst, src []byte) int {
	nDst, _ := e.EncodeBlock(dst, src, true)
	return nDst
}

// EncodeToString returns the base64 encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	dst := make([]byte, e.EncodedLen(len(src)))
	e.Encode(dst, src)
	return string(dst)
}

// AppendEncode appends the encoded form of src to dst and returns the
// extended slice.
func (e *Encoding) AppendEncode(dst, src []byte) []byte {
	need := e.EncodedLen(len(src))
	dst = slices.Grow(dst, need)
	e.Encode(dst[len(dst):][:need], src)
	return dst[:len(dst)+need]
}
