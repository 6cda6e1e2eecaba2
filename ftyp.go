// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// readFtypHeader reads and validates the leading ftyp box of data,
// leaving root positioned right after it.
// It requires a known content size (a ftyp running to end-of-file is
// invalid because meta must follow) and a brand list containing avif or
// avis.
func readFtypHeader(root *stream, st *parseState) {
	hdr := readBoxHeader(root, st, 0)
	if hdr.typ != fccFtyp {
		abortInvalid("first box is not ftyp")
	}
	if !hdr.content.known {
		abortInvalid("ftyp runs to end of file")
	}
	if hdr.content.size < 8 {
		abortInvalid("ftyp too small for major brand and minor version")
	}

	numEntries := hdr.content.size / 4

	for i := int64(0); i < numEntries; i++ {
		if i >= maxFtypBrands {
			abortAborted("ftyp brand list too long")
		}
		brand := hdr.content.readFourCC()
		if i == 1 {
			// Minor version; never compared against a brand.
			continue
		}
		if brand == brandAvif || brand == brandAvis {
			return
		}
	}

	abortInvalid("ftyp brand list does not contain avif or avis")
}
