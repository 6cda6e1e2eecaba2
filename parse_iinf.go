// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// parseIinf reads iinf's entry count and that many infe children,
// looking only for the Tone-Mapped Image item (item type tmap) that
// marks the HEIF gain-map scheme. The content.hasMoreBytes() loop guard
// stops the walk once iinf's own declared size is exhausted (an
// announced count larger than the box actually holds) — that is the
// only condition that ends this loop quietly. A physical end-of-buffer
// partway through a still-declared-open entry is a genuine Truncated
// condition and must propagate as NotEnoughData, not be swallowed here:
// an iinf cut off before a later infe that would have revealed a tmap
// item must not let the caller conclude "no gain-map" from incomplete
// data.
//
// iinf has no resolver call of its own; parseMeta calls the resolver
// once after this returns, which is sufficient since tmap discovery only
// ever unblocks the resolver's gain-map step, never completes a join by
// itself.
func parseIinf(hdr boxHeader, st *parseState) (Features, bool) {
	st.acc.iinfParsed = true

	content := hdr.content
	countWidth := 2
	if hdr.version != 0 {
		countWidth = 4
	}
	count := content.readUint(countWidth)

	for i := uint64(0); i < count && content.hasMoreBytes(); i++ {
		infeHdr := readBoxHeader(content, st, 2)
		if infeHdr.typ == fccInfe {
			parseInfe(infeHdr, st)
		}
	}

	return Features{}, false
}

// parseInfe reads one infe entry looking only for the tmap item type.
// The item id is 2 bytes when version is 2, else 4 bytes, per the
// versions this package supports (0..2).
func parseInfe(hdr boxHeader, st *parseState) {
	idWidth := 4
	if hdr.version == 2 {
		idWidth = 2
	}

	content := hdr.content
	itemID := content.readUint(idWidth)
	content.skip(2) // protection index
	itemType := content.readFourCC()

	if itemType != fccTmap {
		return
	}
	if itemID == 0 || itemID > 255 {
		st.acc.markSkipped()
		return
	}
	st.acc.hasToneMapped = true
	st.acc.toneMappedItemID = uint8(itemID)
}
