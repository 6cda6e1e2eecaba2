// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// internalProp is a (propertyIndex, itemID) pair taken from one ipma
// association entry. propertyIndex is the 1-based ordinal of the
// property within the enclosing ipco.
type internalProp struct {
	propertyIndex int
	itemID        uint8
}

// internalDimProp is produced by one ispe.
type internalDimProp struct {
	propertyIndex int
	width, height uint32
}

// internalChanProp is produced by one pixi or av1C.
type internalChanProp struct {
	propertyIndex int
	bitDepth      uint8
	numChannels   uint8
}

// internalTile is one dimg reference: a tile (or other derived-image
// input) item and the parent item it was referenced from, plus the
// 0-based position of that reference within the parent's dimg list.
type internalTile struct {
	tileItemID   uint8
	parentItemID uint8
	dimgIdx      int
}

// accumulator is the bounded, monotonic state built up while walking a
// single meta box. It is created fresh per call to Identify/GetFeatures
// and never shrinks: fields are set and counters increase, nothing is
// removed or overwritten.
type accumulator struct {
	assocRecords []internalProp
	dimProps     []internalDimProp
	chanProps    []internalChanProp
	tiles        []internalTile

	// dataWasSkipped latches once any bounded array overflows or any
	// association/reference/item id is rejected for exceeding the
	// 8-bit identifier narrowing. It promotes an eventual "not found"
	// into TooComplex rather than InvalidFile.
	dataWasSkipped bool

	hasPrimaryItem bool
	primaryItemID  uint8

	primaryItemIDLocation int64
	primaryItemIDBytes    uint8

	iinfParsed bool
	irefParsed bool

	hasToneMapped     bool
	toneMappedItemID  uint8

	hasAlpha bool

	gainmapPropertyIndex int
}

// markSkipped latches the sticky data-was-skipped flag. It is called
// whenever a bounded array is full or an identifier is narrowed away.
func (a *accumulator) markSkipped() { a.dataWasSkipped = true }

func (a *accumulator) addAssoc(p internalProp) bool {
	if len(a.assocRecords) >= maxAssocRecords {
		a.markSkipped()
		return false
	}
	a.assocRecords = append(a.assocRecords, p)
	return true
}

func (a *accumulator) addDimProp(p internalDimProp) {
	if len(a.dimProps) >= maxDimProps {
		a.markSkipped()
		return
	}
	a.dimProps = append(a.dimProps, p)
}

func (a *accumulator) addChanProp(p internalChanProp) {
	if len(a.chanProps) >= maxChanProps {
		a.markSkipped()
		return
	}
	a.chanProps = append(a.chanProps, p)
}

func (a *accumulator) addTile(t internalTile) bool {
	if len(a.tiles) >= maxTiles {
		a.markSkipped()
		return false
	}
	a.tiles = append(a.tiles, t)
	return true
}

func (a *accumulator) findDimProp(propertyIndex int) (internalDimProp, bool) {
	for _, d := range a.dimProps {
		if d.propertyIndex == propertyIndex {
			return d, true
		}
	}
	return internalDimProp{}, false
}

func (a *accumulator) findChanProp(propertyIndex int) (internalChanProp, bool) {
	for _, c := range a.chanProps {
		if c.propertyIndex == propertyIndex {
			return c, true
		}
	}
	return internalChanProp{}, false
}
