// Copyright 2026 The avifmeta Authors
// SPDX-License-Identifier: MIT

package avifmeta

import "encoding/binary"

// Helpers for assembling synthetic ISOBMFF/AVIF buffers by hand, the
// way a fuzz seed or a table-driven test fixture would be built without
// a real encoder on hand.

func beU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func beU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func beU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func fourccBytes(s string) []byte {
	if len(s) != 4 {
		panic("fourcc must be 4 bytes: " + s)
	}
	return []byte(s)
}

// box wraps payload in a plain (non-full) 32-bit-size box.
func box(typ string, payload []byte) []byte {
	b := make([]byte, 0, 8+len(payload))
	b = append(b, beU32(uint32(8+len(payload)))...)
	b = append(b, fourccBytes(typ)...)
	b = append(b, payload...)
	return b
}

// fullBox wraps payload in a full box: 32-bit size, type, 8-bit version,
// 24-bit flags, then payload.
func fullBox(typ string, version uint8, flags uint32, payload []byte) []byte {
	vf := make([]byte, 4)
	vf[0] = version
	f := beU32(flags)
	copy(vf[1:], f[1:])
	return box(typ, append(vf, payload...))
}

// fullBoxExt64 is fullBox but with an explicit 64-bit extended size
// (size32 == 1), as real encoders sometimes emit for a meta box.
func fullBoxExt64(typ string, version uint8, flags uint32, payload []byte) []byte {
	vf := make([]byte, 4)
	vf[0] = version
	f := beU32(flags)
	copy(vf[1:], f[1:])
	body := append(vf, payload...)
	total := uint64(16 + len(body))

	b := make([]byte, 0, total)
	b = append(b, beU32(1)...)
	b = append(b, fourccBytes(typ)...)
	b = append(b, beU64(total)...)
	b = append(b, body...)
	return b
}

// renameBoxType overwrites the 4-byte type field of an already-built
// box, leaving its size and content untouched.
func renameBoxType(b []byte, newType string) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	copy(out[4:8], fourccBytes(newType))
	return out
}

// setFullBoxVersion overwrites the version byte of an already-built
// full box (the byte immediately following the 8-byte header).
func setFullBoxVersion(b []byte, version uint8) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[8] = version
	return out
}

func ftypBoxMinimal() []byte {
	payload := append(fourccBytes("avif"), make([]byte, 4)...)
	return box("ftyp", payload)
}

func ftypBoxZeroSize() []byte {
	payload := append(fourccBytes("avif"), make([]byte, 4)...)
	b := make([]byte, 0, 8+len(payload))
	b = append(b, beU32(0)...)
	b = append(b, fourccBytes("ftyp")...)
	b = append(b, payload...)
	return b
}

func ispeBox(width, height uint32) []byte {
	return fullBox("ispe", 0, 0, append(beU32(width), beU32(height)...))
}

func pixiBox(depths ...uint8) []byte {
	payload := []byte{uint8(len(depths))}
	payload = append(payload, depths...)
	return fullBox("pixi", 0, 0, payload)
}

func av1CBox(highBitDepth, twelveBit, monochrome bool) []byte {
	var b2 byte
	if highBitDepth {
		b2 |= 0x40
	}
	if twelveBit {
		b2 |= 0x20
	}
	if monochrome {
		b2 |= 0x10
	}
	return box("av1C", []byte{0x81, 0x00, b2})
}

func auxCBox(urn string) []byte {
	return fullBox("auxC", 0, 0, []byte(urn))
}

func ipcoBox(leaves ...[]byte) []byte {
	var payload []byte
	for _, l := range leaves {
		payload = append(payload, l...)
	}
	return box("ipco", payload)
}

type ipmaAssoc struct {
	essential bool
	propIndex int
}

type ipmaItemEntry struct {
	itemID uint64
	assocs []ipmaAssoc
}

func ipmaBox(version uint8, wideAssoc bool, entries []ipmaItemEntry) []byte {
	idWidth := 2
	if version >= 1 {
		idWidth = 4
	}

	var payload []byte
	payload = append(payload, beU32(uint32(len(entries)))...)
	for _, e := range entries {
		if idWidth == 2 {
			payload = append(payload, beU16(uint16(e.itemID))...)
		} else {
			payload = append(payload, beU32(uint32(e.itemID))...)
		}
		payload = append(payload, uint8(len(e.assocs)))
		for _, a := range e.assocs {
			if wideAssoc {
				v := uint16(a.propIndex) & 0x7FFF
				if a.essential {
					v |= 0x8000
				}
				payload = append(payload, beU16(v)...)
			} else {
				v := uint8(a.propIndex) & 0x7F
				if a.essential {
					v |= 0x80
				}
				payload = append(payload, v)
			}
		}
	}

	var flags uint32
	if wideAssoc {
		flags = 1
	}
	return fullBox("ipma", version, flags, payload)
}

func pitmBox(version uint8, id uint64) []byte {
	idWidth := 2
	if version >= 1 {
		idWidth = 4
	}
	var payload []byte
	if idWidth == 2 {
		payload = beU16(uint16(id))
	} else {
		payload = beU32(uint32(id))
	}
	return fullBox("pitm", version, 0, payload)
}

// pitmIDFieldOffset is the offset, from the start of a pitm box's own
// bytes, of its id field. It is constant across versions: the full-box
// header (size, type, version, flags) is always 12 bytes.
const pitmIDFieldOffset = 12

func dimgBox(idWidth int, from uint64, tos []uint64) []byte {
	var payload []byte
	if idWidth == 2 {
		payload = append(payload, beU16(uint16(from))...)
	} else {
		payload = append(payload, beU32(uint32(from))...)
	}
	payload = append(payload, beU16(uint16(len(tos)))...)
	for _, to := range tos {
		if idWidth == 2 {
			payload = append(payload, beU16(uint16(to))...)
		} else {
			payload = append(payload, beU32(uint32(to))...)
		}
	}
	return box("dimg", payload)
}

func irefBox(version uint8, dimgs ...[]byte) []byte {
	var payload []byte
	for _, d := range dimgs {
		payload = append(payload, d...)
	}
	return fullBox("iref", version, 0, payload)
}

func infeBox(version uint8, id uint64, itemType string) []byte {
	idWidth := 4
	if version == 2 {
		idWidth = 2
	}
	var payload []byte
	if idWidth == 2 {
		payload = append(payload, beU16(uint16(id))...)
	} else {
		payload = append(payload, beU32(uint32(id))...)
	}
	payload = append(payload, 0, 0) // protection index
	payload = append(payload, fourccBytes(itemType)...)
	return fullBox("infe", version, 0, payload)
}

func iinfBox(version uint8, infes ...[]byte) []byte {
	countWidth := 2
	if version != 0 {
		countWidth = 4
	}
	var payload []byte
	if countWidth == 2 {
		payload = append(payload, beU16(uint16(len(infes)))...)
	} else {
		payload = append(payload, beU32(uint32(len(infes)))...)
	}
	for _, e := range infes {
		payload = append(payload, e...)
	}
	return fullBox("iinf", version, 0, payload)
}

func iprpBox(ipco, ipma []byte) []byte {
	return box("iprp", append(append([]byte{}, ipco...), ipma...))
}

func metaBox(children ...[]byte) []byte {
	var payload []byte
	for _, c := range children {
		payload = append(payload, c...)
	}
	return fullBox("meta", 0, 0, payload)
}

func metaBoxExt64(children ...[]byte) []byte {
	var payload []byte
	for _, c := range children {
		payload = append(payload, c...)
	}
	return fullBoxExt64("meta", 0, 0, payload)
}

func mdatZeroSize() []byte {
	b := make([]byte, 0, 8)
	b = append(b, beU32(0)...)
	b = append(b, fourccBytes("mdat")...)
	return b
}

func buildFile(meta []byte, trailing ...[]byte) []byte {
	out := append([]byte{}, ftypBoxMinimal()...)
	out = append(out, meta...)
	for _, t := range trailing {
		out = append(out, t...)
	}
	return out
}
