// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

// fourCC is a four-byte box type or brand tag.
type fourCC [4]byte

func (f fourCC) String() string { return string(f[:]) }

// Box and item types recognized while walking the ISOBMFF container.
var (
	fccFtyp = fourCC{'f', 't', 'y', 'p'}
	fccMeta = fourCC{'m', 'e', 't', 'a'}
	fccPitm = fourCC{'p', 'i', 't', 'm'}
	fccIprp = fourCC{'i', 'p', 'r', 'p'}
	fccIref = fourCC{'i', 'r', 'e', 'f'}
	fccIinf = fourCC{'i', 'i', 'n', 'f'}
	fccIpco = fourCC{'i', 'p', 'c', 'o'}
	fccIpma = fourCC{'i', 'p', 'm', 'a'}
	fccIspe = fourCC{'i', 's', 'p', 'e'}
	fccPixi = fourCC{'p', 'i', 'x', 'i'}
	fccAv1C = fourCC{'a', 'v', '1', 'C'}
	fccAuxC = fourCC{'a', 'u', 'x', 'C'}
	fccDimg = fourCC{'d', 'i', 'm', 'g'}
	fccInfe = fourCC{'i', 'n', 'f', 'e'}
	fccTmap = fourCC{'t', 'm', 'a', 'p'}

	// fccSkip is the sentinel a recognized full-box type is rewritten to
	// when its version falls outside the range this package supports.
	fccSkip = fourCC{'s', 'k', 'i', 'p'}

	brandAvif = fourCC{'a', 'v', 'i', 'f'}
	brandAvis = fourCC{'a', 'v', 'i', 's'}
)

// URN strings carried in the auxC property's null-terminated payload.
const (
	urnAuxAlpha    = "urn:mpeg:mpegB:cicp:systems:auxiliary:alpha\x00"
	urnAuxGainmap  = "urn:com:photo:aux:hdrgainmap\x00"
)

// Bounds that together guarantee termination in time linear in input
// length and space bounded by a small constant. See spec §5.
const (
	maxParsedBoxes    = 4096
	maxTiles          = 16
	maxAssocRecords   = 32
	maxDimProps       = 8
	maxChanProps      = 8
	maxFtypBrands     = 32
	maxTileRecursion  = 3
	maxIpcoProperties = 255
	maxIpmaEntries    = 32
)

// fullBoxVersionRanges lists the full-box types this package understands
// and the [min,max] version each supports. Versions outside this range
// are softened to fccSkip rather than rejected; see box.go.
var fullBoxVersionRanges = map[fourCC][2]uint8{
	fccMeta: {0, 0},
	fccPitm: {0, 1},
	fccIpma: {0, 1},
	fccIspe: {0, 0},
	fccPixi: {0, 0},
	fccIref: {0, 1},
	fccAuxC: {0, 0},
	fccIinf: {0, 1},
	fccInfe: {0, 2},
}

func isFullBoxType(t fourCC) bool {
	_, ok := fullBoxVersionRanges[t]
	return ok
}

func versionSupported(t fourCC, v uint8) bool {
	r, ok := fullBoxVersionRanges[t]
	if !ok {
		return true
	}
	return v >= r[0] && v <= r[1]
}
