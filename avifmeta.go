// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

// Package avifmeta extracts a small, bounded set of metadata features
// from a byte buffer claiming to be an AVIF still image, without
// decoding any image samples. It reads only box headers, item
// properties, item references and item info — enough to report pixel
// dimensions, bit depth, channel count, gain-map presence and the
// location of the primary-item id field.
package avifmeta

// Features is everything this package can report about one AVIF
// buffer's primary item.
type Features struct {
	// Width and Height are the primary item's pixel dimensions as
	// declared by its ispe property, before any transformative
	// property (rotation, mirroring, cropping) is applied.
	Width, Height uint32

	// BitDepth is one of 8, 10 or 12.
	BitDepth uint8

	// NumChannels counts color channels plus, if present, an alpha
	// channel associated via an auxC alpha property.
	NumChannels uint8

	// HasGainmap reports whether the file carries a gain-map image,
	// discovered via either the HEIF tone-mapped-image scheme or the
	// Adobe auxC URN scheme.
	HasGainmap bool

	// GainmapItemID is the item id of the gain-map image. Zero when
	// HasGainmap is false.
	GainmapItemID uint8

	// PrimaryItemIDLocation is the absolute byte offset, within the
	// original buffer, of the primary-item id field read from pitm.
	PrimaryItemIDLocation int64

	// PrimaryItemIDBytes is the width, in bytes, of the field at
	// PrimaryItemIDLocation: 2 or 4, depending on pitm's version. It is
	// informational only and reported exactly as read; GetFeatures never
	// normalizes it, and a caller that rewrites the id field in place
	// must keep this width.
	PrimaryItemIDBytes uint8
}

// Identify reports whether data begins with a well-formed ftyp box at
// offset 0 whose brand list contains avif or avis. It does not inspect
// anything past ftyp, so it can succeed on a buffer GetFeatures later
// rejects.
func Identify(data []byte) error {
	return protectIdentify(func() error {
		readFtypHeader(newRootStream(data), &parseState{})
		return nil
	})
}

// GetFeatures parses data as far as necessary to resolve Features for
// its primary item and returns them. It reads no further than the
// first point at which every feature is known.
func GetFeatures(data []byte) (Features, error) {
	return protect(func() (Features, error) {
		return parseFile(data), nil
	})
}
