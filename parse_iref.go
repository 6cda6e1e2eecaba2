// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// parseIref walks iref's dimg reference boxes, recording a tile record
// per referenced item, and calls the resolver after each dimg box
// completes — a late iref can still be the only source of a gain-map
// identity (the HEIF tmap scheme), so this needs to check as it goes
// rather than once at the end. irefParsed only latches once every dimg
// box has actually been seen: setting it any earlier would let a
// resolve() call mid-walk conclude "no gain-map" before a later dimg box
// had a chance to supply the tmap item's second input.
func parseIref(hdr boxHeader, st *parseState) (Features, bool) {
	idWidth := 2
	if hdr.version >= 1 {
		idWidth = 4
	}

	content := hdr.content
	for content.hasMoreBytes() {
		childHdr := readBoxHeader(content, st, 2)
		if childHdr.typ != fccDimg {
			continue
		}

		parseDimgEntries(childHdr.content, st, idWidth)

		if feat, ok := resolve(&st.acc); ok {
			return feat, true
		}
	}

	st.acc.irefParsed = true
	return resolve(&st.acc)
}

// parseDimgEntries reads one dimg box: a from_item_id (width dictated by
// iref's own version), a 16-bit reference count, then that many
// to_item_id entries of the same width. Each reference becomes a tile
// record carrying its 0-based position in this dimg's list.
func parseDimgEntries(content *stream, st *parseState, idWidth int) {
	fromRaw := content.readUint(idWidth)
	refCount := content.readU16()

	for i := 0; i < int(refCount); i++ {
		toRaw := content.readUint(idWidth)

		if fromRaw > 255 || toRaw > 255 {
			st.acc.markSkipped()
			continue
		}

		if !st.acc.addTile(internalTile{
			tileItemID:   uint8(toRaw),
			parentItemID: uint8(fromRaw),
			dimgIdx:      i,
		}) {
			return
		}
	}
}
