// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// boxHeader is the result of reading one ISOBMFF box prefix: its type,
// its (possibly rewritten) full-box version/flags, and a content stream
// already bounded to the box's declared size (or left open if the box
// runs to the end of its enclosing stream).
type boxHeader struct {
	startAbs int64
	typ      fourCC
	version  uint8
	flags    uint32
	isFull   bool
	content  *stream
}

// parseState threads the global box-count budget and the feature
// accumulator through the whole recursive descent.
type parseState struct {
	boxCount int
	acc      accumulator
}

// readBoxHeader reads one box prefix from s: a 32-bit size (extended to
// 64-bit for size==1, or "to end of enclosing stream" for size==0), a
// four-character type, and — for the full-box types this package
// recognizes — an 8-bit version and 24-bit flags. A version outside the
// range a type supports rewrites typ to fccSkip rather than failing.
//
// depth is the box's nesting depth from the top level (0 = top-level
// box). size==0 is only legal at depth 0. Every box read here counts
// against the global parse budget, except a top-level ftyp: whether or
// not a caller has already consumed ftyp must not change how much
// budget is left for the rest of the file.
func readBoxHeader(s *stream, st *parseState, depth int) boxHeader {
	startAbs := s.posAbs()

	size32 := s.readU32()
	typ := s.readFourCC()

	headerLen := int64(8)
	sz := uint64(size32)
	switch size32 {
	case 1:
		sz = s.readU64()
		headerLen = 16
	case 0:
		if depth != 0 {
			abortInvalid("box size 0 is only legal at the top level")
		}
	}

	if !(depth == 0 && typ == fccFtyp) {
		st.boxCount++
		if st.boxCount > maxParsedBoxes {
			abortAborted("exceeded the maximum number of boxes")
		}
	}

	var version uint8
	var flags uint32
	isFull := isFullBoxType(typ)
	if isFull {
		vf := s.readU32()
		version = uint8(vf >> 24)
		flags = vf & 0x00FFFFFF
		headerLen += 4
		if !versionSupported(typ, version) {
			typ = fccSkip
			// A version we don't understand is not evidence the file is
			// malformed, only that this reader may be missing something
			// essential; if nothing else ever resolves the features, that
			// must surface as TooComplex rather than InvalidFile.
			st.acc.markSkipped()
		}
	}

	var content *stream
	if size32 == 0 {
		content = s.substreamOpen()
	} else {
		if sz < uint64(headerLen) {
			abortInvalid("box size smaller than its own header")
		}
		content = s.substream(sz - uint64(headerLen))
	}

	return boxHeader{startAbs: startAbs, typ: typ, version: version, flags: flags, isFull: isFull, content: content}
}
