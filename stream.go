// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

import (
	"encoding/binary"
	"math"
)

// stream is a cursor over a byte slice with an optional declared parent
// size. When known is false the stream runs to the end of its own data
// (spec's "None" — extends to end of enclosing box / end of file); when
// known is true, size bounds how many bytes this stream may logically
// consume regardless of how many physical bytes data actually holds
// (spec's "Some(n)").
//
// data is never reassigned as bytes are consumed; pos advances instead,
// so absolute offsets (baseAbs+pos) stay stable for callers that need to
// record a position (e.g. the primary-item id field location).
type stream struct {
	data    []byte
	pos     int64
	known   bool
	size    int64
	baseAbs int64
}

// newRootStream wraps the whole input buffer. It has no declared parent
// size of its own — there is no enclosing box above it to have declared
// one — exactly the substream(None) case applied to the top level. This
// is what lets a box's own honest declared size (e.g. meta's) propagate
// a real physical shortfall down to a plain read() as Truncated, instead
// of being caught early as "exceeds declared parent size" simply because
// the buffer handed to us happened to be cut short.
func newRootStream(data []byte) *stream {
	return &stream{data: data}
}

// posAbs returns the cursor's absolute offset into the original input.
func (s *stream) posAbs() int64 { return s.baseAbs + s.pos }

// numReadBytes returns the cumulative bytes this stream has consumed or
// skipped.
func (s *stream) numReadBytes() int64 { return s.pos }

// hasMoreBytes is false iff the parent size is known and the cursor has
// reached it; otherwise true, even if the physical buffer has already
// run dry (a real end-of-data condition surfaces as Truncated on the
// next read instead).
func (s *stream) hasMoreBytes() bool {
	if s.known {
		return s.pos < s.size
	}
	return true
}

// availableNow is the number of bytes that could be read right now
// without hitting either physical or declared-size truncation. It is an
// internal peeking helper, not part of the public read/skip contract.
func (s *stream) availableNow() int64 {
	avail := int64(len(s.data)) - s.pos
	if avail < 0 {
		avail = 0
	}
	if s.known {
		rem := s.size - s.pos
		if rem < 0 {
			rem = 0
		}
		if rem < avail {
			avail = rem
		}
	}
	return avail
}

func (s *stream) read(n int64) []byte {
	if n < 0 {
		abortAborted("negative read length")
	}
	end := s.pos + n
	if end < s.pos {
		abortAborted("stream offset overflow")
	}
	if s.known && end > s.size {
		abortAborted("read exceeds declared box size")
	}
	if end > int64(len(s.data)) {
		abortTruncated("not enough bytes remaining")
	}
	b := s.data[s.pos:end]
	s.pos = end
	return b
}

func (s *stream) readU8() uint8 { return s.read(1)[0] }

func (s *stream) readU16() uint16 { return binary.BigEndian.Uint16(s.read(2)) }

func (s *stream) readU24() uint32 {
	b := s.read(3)
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func (s *stream) readU32() uint32 { return binary.BigEndian.Uint32(s.read(4)) }

func (s *stream) readU64() uint64 { return binary.BigEndian.Uint64(s.read(8)) }

// readUint reads a big-endian unsigned integer of k bytes. k must be 1,
// 2, or 4.
func (s *stream) readUint(k int) uint64 {
	switch k {
	case 1:
		return uint64(s.readU8())
	case 2:
		return uint64(s.readU16())
	case 4:
		return uint64(s.readU32())
	default:
		abortAborted("unsupported integer width")
		return 0
	}
}

func (s *stream) readFourCC() fourCC {
	var f fourCC
	copy(f[:], s.read(4))
	return f
}

// skip advances the cursor without validating that the underlying
// buffer actually holds that many bytes — only that doing so doesn't
// overflow or run past this stream's declared size. A skip past
// physically available bytes surfaces as Truncated lazily, on the next
// read.
func (s *stream) skip(n int64) {
	if n < 0 {
		abortAborted("negative skip length")
	}
	end := s.pos + n
	if end < s.pos {
		abortAborted("stream offset overflow")
	}
	if s.known && end > s.size {
		abortInvalid("skip exceeds declared box size")
	}
	s.pos = end
}

// substream carves a child stream of declared length n starting at the
// cursor, clipped to whatever physical bytes remain. The parent's
// cursor advances by the full declared n, mirroring skip.
func (s *stream) substream(n uint64) *stream {
	if n > uint64(math.MaxInt64) {
		abortAborted("box size overflow")
	}
	nn := int64(n)
	end := s.pos + nn
	if end < s.pos {
		abortAborted("stream offset overflow")
	}
	if s.known && end > s.size {
		abortInvalid("child box exceeds declared parent size")
	}

	var childData []byte
	if s.pos < int64(len(s.data)) {
		ce := end
		if ce > int64(len(s.data)) {
			ce = int64(len(s.data))
		}
		childData = s.data[s.pos:ce]
	}

	child := &stream{data: childData, known: true, size: nn, baseAbs: s.baseAbs + s.pos}
	s.pos = end
	return child
}

// substreamOpen carves a child stream over the rest of this stream's
// physical data, with unknown (None) declared size.
func (s *stream) substreamOpen() *stream {
	var childData []byte
	if s.pos < int64(len(s.data)) {
		childData = s.data[s.pos:]
	}
	child := &stream{data: childData, baseAbs: s.baseAbs + s.pos}
	s.pos = int64(len(s.data))
	return child
}
