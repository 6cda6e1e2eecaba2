// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// parseIprp walks iprp's children: ipco (property definitions) and ipma
// (item-to-property associations). It returns early as soon as an ipma
// box resolves the whole picture.
func parseIprp(content *stream, st *parseState) (Features, bool) {
	for content.hasMoreBytes() {
		hdr := readBoxHeader(content, st, 2)

		switch hdr.typ {
		case fccIpco:
			parseIpco(hdr.content, st)
		case fccIpma:
			if feat, ok := parseIpma(hdr, st); ok {
				return feat, true
			}
		}
	}
	return Features{}, false
}

// parseIpco walks ipco's property leaves, numbering them by physical
// 1-based position regardless of type. Past the 255th property the walk
// aborts (latching the skip flag) rather than continuing indefinitely.
func parseIpco(content *stream, st *parseState) {
	propIndex := 0
	for content.hasMoreBytes() {
		hdr := readBoxHeader(content, st, 3)
		propIndex++
		if propIndex > maxIpcoProperties {
			st.acc.markSkipped()
			return
		}

		switch hdr.typ {
		case fccIspe:
			parseIspe(hdr.content, st, propIndex)
		case fccPixi:
			parsePixi(hdr.content, st, propIndex)
		case fccAv1C:
			parseAv1C(hdr.content, st, propIndex)
		case fccAuxC:
			parseAuxC(hdr.content, st, propIndex)
		}
	}
}

func parseIspe(content *stream, st *parseState, propIndex int) {
	width := content.readU32()
	height := content.readU32()
	if width == 0 || height == 0 {
		abortInvalid("ispe has a zero dimension")
	}
	st.acc.addDimProp(internalDimProp{propertyIndex: propIndex, width: width, height: height})
}

func parsePixi(content *stream, st *parseState, propIndex int) {
	numChannels := content.readU8()
	if numChannels == 0 || numChannels > 3 {
		abortInvalid("pixi has an unsupported channel count")
	}

	var bitDepth uint8
	for i := uint8(0); i < numChannels; i++ {
		d := content.readU8()
		if d == 0 {
			abortInvalid("pixi has a zero bit depth")
		}
		if i == 0 {
			bitDepth = d
		} else if d != bitDepth {
			abortInvalid("pixi channels do not share a bit depth")
		}
	}

	st.acc.addChanProp(internalChanProp{propertyIndex: propIndex, bitDepth: bitDepth, numChannels: numChannels})
}

func parseAv1C(content *stream, st *parseState, propIndex int) {
	hdrBytes := content.read(3)
	b := hdrBytes[2]
	highBitDepth := b&0x40 != 0
	twelveBit := b&0x20 != 0
	monochrome := b&0x10 != 0

	if twelveBit && !highBitDepth {
		abortInvalid("av1C declares twelve-bit without high-bit-depth")
	}

	bitDepth := uint8(8)
	switch {
	case twelveBit:
		bitDepth = 12
	case highBitDepth:
		bitDepth = 10
	}
	numChannels := uint8(3)
	if monochrome {
		numChannels = 1
	}

	st.acc.addChanProp(internalChanProp{propertyIndex: propIndex, bitDepth: bitDepth, numChannels: numChannels})
}

// parseAuxC reads auxC's null-terminated URN once, bounded by the
// longer of the two reference strings this package recognizes (so a
// single read covers either candidate), and checks it, as a
// byte-for-byte prefix match up to and including each reference
// string's trailing NUL, against the alpha and Adobe gain-map URNs. The
// read never goes past the box's own content size. Both candidates are
// matched as prefixes of that one read, so a failed alpha comparison
// never consumes bytes the gain-map comparison still needs.
func parseAuxC(content *stream, st *parseState, propIndex int) {
	maxLen := int64(len(urnAuxAlpha))
	if int64(len(urnAuxGainmap)) > maxLen {
		maxLen = int64(len(urnAuxGainmap))
	}
	n := content.availableNow()
	if n > maxLen {
		n = maxLen
	}
	got := content.read(n)

	if matchesURNPrefix(got, urnAuxAlpha) {
		st.acc.hasAlpha = true
		return
	}
	if matchesURNPrefix(got, urnAuxGainmap) {
		st.acc.gainmapPropertyIndex = propIndex
	}
}

func matchesURNPrefix(got []byte, ref string) bool {
	if int64(len(got)) < int64(len(ref)) {
		return false
	}
	return string(got[:len(ref)]) == ref
}

// parseIpma reads one ipma box's item-to-property associations and, once
// the box is fully consumed, invokes the resolver.
func parseIpma(hdr boxHeader, st *parseState) (Features, bool) {
	content := hdr.content
	entryCount := content.readU32()

	itemIDWidth := 2
	if hdr.version >= 1 {
		itemIDWidth = 4
	}
	wideAssocValue := hdr.flags&1 != 0

	entries := 0
	for entries < int(entryCount) && entries < maxIpmaEntries && len(st.acc.assocRecords) < maxAssocRecords {
		itemID := content.readUint(itemIDWidth)
		assocCount := content.readU8()

		assocsDone := 0
		for assocsDone < int(assocCount) && assocsDone < maxIpmaEntries && len(st.acc.assocRecords) < maxAssocRecords {
			var propIdx int
			if wideAssocValue {
				v := content.readU16()
				propIdx = int(v & 0x7FFF)
			} else {
				v := content.readU8()
				propIdx = int(v & 0x7F)
			}

			if itemID > 255 || propIdx > 255 {
				st.acc.markSkipped()
			} else {
				st.acc.addAssoc(internalProp{propertyIndex: propIdx, itemID: uint8(itemID)})
			}
			assocsDone++
		}

		entries++
	}

	return resolve(&st.acc)
}
