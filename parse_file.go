// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// parseFile walks the top level of data: validates ftyp, then scans
// sibling boxes until a meta box appears and hands off to parseMeta. Any
// non-meta top-level box with an unknown (to-end-of-file) content size
// is invalid, since it would shadow the required meta box. The root
// stream has no declared size of its own, so a file that simply runs out
// of bytes before a meta box ever appears surfaces as NotEnoughData, not
// InvalidFile — indistinguishable, from the bytes alone, from a buffer
// whose remaining boxes just haven't arrived yet.
func parseFile(data []byte) Features {
	st := &parseState{}
	root := newRootStream(data)

	readFtypHeader(root, st)

	for {
		hdr := readBoxHeader(root, st, 0)
		if hdr.typ == fccMeta {
			return parseMeta(hdr.content, st)
		}
		if !hdr.content.known {
			abortInvalid("top-level box runs to end of file before meta appears")
		}
	}
}
