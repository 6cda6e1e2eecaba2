// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// resolve attempts to materialize the primary item's features from
// whatever has been accumulated so far. It is called opportunistically,
// after any box whose completion might have filled the last gap, so
// that parsing can stop the instant everything is known and keep going
// otherwise — including when a late iref still owes the gain-map.
func resolve(acc *accumulator) (Features, bool) {
	if !acc.hasPrimaryItem || len(acc.dimProps) == 0 || len(acc.chanProps) == 0 {
		return Features{}, false
	}

	hasGainmap, gainmapItemID, gainmapKnown := resolveGainmap(acc)
	if !gainmapKnown {
		return Features{}, false
	}

	js := joinState{}
	if !joinFeatures(acc, acc.primaryItemID, 0, &js) {
		return Features{}, false
	}

	numChannels := js.numChannels
	if acc.hasAlpha {
		numChannels++
	}

	feat := Features{
		Width:                 js.width,
		Height:                js.height,
		BitDepth:              js.bitDepth,
		NumChannels:           numChannels,
		HasGainmap:            hasGainmap,
		PrimaryItemIDLocation: acc.primaryItemIDLocation,
		PrimaryItemIDBytes:    acc.primaryItemIDBytes,
	}
	if hasGainmap {
		feat.GainmapItemID = gainmapItemID
	}
	return feat, true
}

// resolveGainmap implements the two gain-map discovery schemes in
// priority order. gainmapKnown is false only while a source that could
// still answer the question (iinf or, once a tmap item is known, iref)
// has not yet been fully parsed.
func resolveGainmap(acc *accumulator) (hasGainmap bool, gainmapItemID uint8, gainmapKnown bool) {
	if acc.hasToneMapped {
		for _, t := range acc.tiles {
			if t.parentItemID == acc.toneMappedItemID && t.dimgIdx == 1 {
				return true, t.tileItemID, true
			}
		}
	}

	if acc.gainmapPropertyIndex != 0 {
		for _, p := range acc.assocRecords {
			if p.propertyIndex == acc.gainmapPropertyIndex {
				return true, p.itemID, true
			}
		}
	}

	if !acc.iinfParsed {
		return false, 0, false
	}
	if acc.hasToneMapped && !acc.irefParsed {
		return false, 0, false
	}

	return false, 0, true
}

// joinState accumulates the feature facts discovered across the
// recursive tile join so partial knowledge from one call carries into
// the next.
type joinState struct {
	width, height       uint32
	bitDepth, numChannels uint8
}

// joinFeatures looks for properties associated with target, filling in
// whatever joinState is still missing, and recurses into target's tiles
// (up to depth 3) if the join isn't complete yet. Width/height are only
// ever filled from the primary item's own ispe, never a tile's.
func joinFeatures(acc *accumulator, target uint8, depth int, js *joinState) bool {
	isPrimary := target == acc.primaryItemID

	for _, p := range acc.assocRecords {
		if p.itemID != target {
			continue
		}
		if isPrimary && (js.width == 0 || js.height == 0) {
			if d, ok := acc.findDimProp(p.propertyIndex); ok {
				js.width, js.height = d.width, d.height
			}
		}
		if js.bitDepth == 0 || js.numChannels == 0 {
			if c, ok := acc.findChanProp(p.propertyIndex); ok {
				js.bitDepth, js.numChannels = c.bitDepth, c.numChannels
			}
		}
	}

	if js.width != 0 && js.height != 0 && js.bitDepth != 0 && js.numChannels != 0 {
		return true
	}

	if depth >= maxTileRecursion {
		return false
	}

	for _, t := range acc.tiles {
		if t.parentItemID != target {
			continue
		}
		if joinFeatures(acc, t.tileItemID, depth+1, js) {
			return true
		}
	}

	return false
}
