// Package rgb555 packs and unpacks the 15-bit RGB keys used throughout
// palettize to index the Oklab, blue-noise, and nearest-color tables.
package rgb555

// Key packs an 8-bit RGB triple into a 15-bit key by taking the top 5 bits
// of each channel: (r5<<10)|(g5<<5)|b5.
func Key(r, g, b uint8) uint16 {
	return uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}

// Expand reconstructs 8-bit channel values from a 15-bit key by replicating
// the top 3 bits of each 5-bit channel into its low 3 bits, so that
// b8 = (b5<<3)|(b5>>2).
func Expand(key uint16) (r, g, b uint8) {
	r5 := uint8(key>>10) & 0x1F
	g5 := uint8(key>>5) & 0x1F
	b5 := uint8(key) & 0x1F
	return (r5 << 3) | (r5 >> 2), (g5 << 3) | (g5 >> 2), (b5 << 3) | (b5 >> 2)
}

// KeyRGBA packs a 32-bit RGBA color (R,G,B,A in the top-to-bottom byte
// order described by the data model) into its RGB555 key, ignoring alpha.
func KeyRGBA(c uint32) uint16 {
	r := uint8(c >> 24)
	g := uint8(c >> 16)
	b := uint8(c >> 8)
	return Key(r, g, b)
}

// Opaque reports whether the top bit of c's 8-bit alpha channel is set.
// This bit, not a comparison against 128, is the only alpha signal the
// engine ever consults.
func Opaque(c uint32) bool {
	return uint8(c)&0x80 != 0
}

// Channels splits a packed RGBA color into its four 8-bit channels.
func Channels(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Pack reassembles four 8-bit channels into a packed RGBA color.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// Snap clears then reconstructs the low 3 bits of R, G, B and sets alpha
// to 0xFF, idempotently moving c onto the RGB555-reconstructed grid. This
// is the dither-preprocessing formula (clear, then replicate top bits
// down) rather than the palette package's counting-step formula (which
// ORs the same replicated pattern in without clearing first — the two
// diverge whenever a channel's low 3 bits disagree with its own top-bit
// replication). Key/KeyRGBA already address a color by its top 5 bits per
// channel, so the per-pixel dither kernels never need to materialize this
// reconstructed 8-bit form just to look up a palette index; Snap exists
// for callers that need the reconstructed color itself, not just its key.
func Snap(c uint32) uint32 {
	c &= 0xF8F8F880
	c |= (c >> 5) & 0x07070700
	c |= 0xFF
	return c
}
