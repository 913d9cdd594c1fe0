package rapidbase64

import "slices"

// DecodeBlock implements [Engine] with the portable scalar decoder.
//
// Complete groups decode left to right until src runs out, a padded
// terminal group is consumed, or a malformed byte is found. Progress counts
// are valid in every case, so callers keep the bytes decoded before a
// failure; error offsets are relative to src.
func (e *Encoding) DecodeBlock(dst, src []byte, final bool) (nDst, nSrc int, terminated bool, err error) {
	for nSrc+encodedGroupSize <= len(src) {
		c0 := e.decodeMap[src[nSrc]]
		c1 := e.decodeMap[src[nSrc+1]]
		c2 := e.decodeMap[src[nSrc+2]]
		c3 := e.decodeMap[src[nSrc+3]]
		if c0|c1|c2|c3 == invalidSymbol {
			// Padding or a byte outside the alphabet.
			n, _, gerr := e.decodeTail(dst[nDst:], src[nSrc:nSrc+encodedGroupSize], nSrc)
			nDst += n
			if gerr != nil {
				return nDst, nSrc, false, gerr
			}
			return nDst, nSrc + encodedGroupSize, true, nil
		}
		v := uint32(c0)<<18 | uint32(c1)<<12 | uint32(c2)<<6 | uint32(c3)
		dst[nDst] = byte(v >> 16)
		dst[nDst+1] = byte(v >> 8)
		dst[nDst+2] = byte(v)
		nDst += decodedGroupSize
		nSrc += encodedGroupSize
	}

	if !final || nSrc == len(src) {
		return nDst, nSrc, false, nil
	}

	// Short tail ending the stream.
	n, t, gerr := e.decodeTail(dst[nDst:], src[nSrc:], nSrc)
	nDst += n
	if gerr != nil {
		return nDst, nSrc, false, gerr
	}
	return nDst, len(src), t, nil
}

// decodeTail handles any group the fast path cannot: one holding padding or
// a malformed byte, or a short group ending the stream. grp starts at
// offset abs of the block being decoded.
func (e *Encoding) decodeTail(dst, grp []byte, abs int) (int, bool, error) {
	bad := 0
	for bad < len(grp) && e.decodeMap[grp[bad]] != invalidSymbol {
		bad++
	}

	if bad < len(grp) && grp[bad] != padByte {
		return 0, false, &DecodeError{Off: int64(abs + bad), Byte: grp[bad], Kind: ErrInvalidByte}
	}

	if bad == len(grp) {
		// Pad-free tail; a lone symbol carries fewer than eight bits.
		if len(grp) == 1 {
			return 0, false, &DecodeError{Off: int64(abs), Byte: grp[0], Kind: ErrInvalidLength}
		}
		n, err := e.decodePartial(dst, grp, abs)
		return n, false, err
	}

	// grp[bad] is padding.
	switch {
	case bad < 2, len(grp) < encodedGroupSize:
		// Padding cannot follow fewer than two symbols, and a short group
		// has no room left for the rest of a padded one.
		return 0, false, &DecodeError{Off: int64(abs + bad), Byte: padByte, Kind: ErrInvalidPadding}
	case bad == 2 && grp[3] != padByte:
		// Whatever follows "xx=" inside the group, the report points at the
		// padding: the group shape is already unsatisfiable.
		return 0, false, &DecodeError{Off: int64(abs + 2), Byte: padByte, Kind: ErrInvalidPadding}
	}

	n, err := e.decodePartial(dst, grp[:bad], abs)
	return n, true, err
}

// decodePartial decodes the 2 or 3 data symbols of a terminal group.
func (e *Encoding) decodePartial(dst, syms []byte, abs int) (int, error) {
	c0 := e.decodeMap[syms[0]]
	c1 := e.decodeMap[syms[1]]
	if len(syms) == 2 {
		if c1&0x0f != 0 && !e.allowTrailingBits {
			return 0, &DecodeError{Off: int64(abs + 1), Byte: syms[1], Kind: ErrInvalidLastByte}
		}
		dst[0] = c0<<2 | c1>>4
		return 1, nil
	}
	c2 := e.decodeMap[syms[2]]
	if c2&0x03 != 0 && !e.allowTrailingBits {
		return 0, &DecodeError{Off: int64(abs + 2), Byte: syms[2], Kind: ErrInvalidLastByte}
	}
	dst[0] = c0<<2 | c1>>4
	dst[1] = c1<<4 | c2>>2
	return 2, nil
}

// Decode decodes src into dst, which must be at least DecodedLen(len(src))
// bytes. It returns the number of bytes written, stopping at the first
// malformed byte; bytes decoded before the failure are kept. The error, if
// any, is a *DecodeError.
func (e *Encoding) Decode(dst, src []byte) (int, error) {
	nDst, nSrc, terminated, err := e.DecodeBlock(dst, src, true)
	if err != nil {
		return nDst, err
	}
	if terminated && nSrc < len(src) {
		return nDst, &DecodeError{Off: int64(nSrc), Byte: src[nSrc], Kind: ErrTrailingData}
	}
	return nDst, nil
}

// DecodeString decodes the base64 string s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	dst := make([]byte, e.DecodedLen(len(s)))
	n, err := e.Decode(dst, []byte(s))
	return dst[:n], err
}

// AppendDecode appends the decoded form of src to dst and returns the
// extended slice. On error the appended bytes are those decoded before the
// failure.
func (e *Encoding) AppendDecode(dst, src []byte) ([]byte, error) {
	need := e.DecodedLen(len(src))
	dst = slices.Grow(dst, need)
	n, err := e.Decode(dst[len(dst):][:need], src)
	return dst[:len(dst)+n], err
}
