package palette

import (
	"sort"

	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/rgb555"
)

// Exact adopts colors verbatim into a new Store. Entries whose alpha bit
// is clear don't occupy a counted slot; if any such entry appears, slot 0
// is reserved for RGBA 0 and every opaque entry is shifted one slot to the
// right. limit caps the number of opaque entries copied; a limit <= 0
// means "no explicit limit" (256).
//
// If colors is nil, has fewer than 2 entries, or an explicit limit < 2 is
// given, Exact silently falls back to the built-in Haltonic palette — this
// is the only error handling the core performs for malformed palette
// input (spec.md §7): no error is returned.
func Exact(colors []uint32, limit int) *Store {
	if colors == nil || len(colors) < 2 || (limit > 0 && limit < 2) {
		return haltonicStore()
	}

	n := limit
	if n <= 0 || n > 256 {
		n = 256
	}

	s := &Store{}
	hasTransparent := false
	count := 0
	for _, c := range colors {
		if count >= n {
			break
		}
		if !rgb555.Opaque(c) {
			hasTransparent = true
			continue
		}
		s.Colors[count] = c
		count++
	}

	if hasTransparent {
		if count >= 256 {
			count = 255
		}
		copy(s.Colors[1:count+1], s.Colors[:count])
		s.Colors[0] = 0
		count++
	}

	s.Count = count
	s.computeBias()
	s.SetDitherStrength(1.0)
	s.BuildIndex()
	return s
}

// ExactWithMapping restores a Store from a caller-persisted palette and
// nearest-color mapping, skipping index construction entirely (spec.md
// §4.3.1's preload variant).
func ExactWithMapping(colors [256]uint32, count int, mapping [32768]byte) *Store {
	s := &Store{Colors: colors, Count: count, Mapping: mapping}
	s.computeBias()
	s.SetDitherStrength(1.0)
	return s
}

// colorCount pairs a post-snap color with its occurrence count, the unit
// Analyze sorts by descending popularity.
type colorCount struct {
	color uint32
	count int
}

// countSnap implements the counting step's own snap formula (spec.md
// §4.3.2 step 1): OR the top-bit-derived low-3-bit pattern straight into
// c, alpha forced opaque, with no AND-clear first. This is deliberately
// not rgb555.Snap: that function clears the low 3 bits before
// reconstructing them (the dither-preprocessing formula, spec.md §4.7),
// which can land on a different bucket than this OR-only formula for a
// color whose low 3 bits don't already agree with its own top-bit
// replication.
func countSnap(c uint32) uint32 {
	c |= (c >> 5) & 0x07070700
	c |= 0xFF
	return c
}

// Analyze counts every opaque pixel across frames (keyed by countSnap's
// OR-only snap of the pixel), sorts colors by descending popularity,
// and either adopts all distinct colors or greedily selects the most
// popular ones whose perceptual distance to every already-accepted color
// is at least threshold>>2 (spec.md §4.3.2). limit <= 0 means 256.
//
// Equally-popular colors keep the order in which they were first seen
// (frames in order, each in raster order), so the same frames always
// yield the same palette.
func Analyze(frames []frame.Frame, threshold, limit int) *Store {
	if limit <= 0 || limit > 256 {
		limit = 256
	}
	thresholdPrime := float64(threshold >> 2)

	counts := make(map[uint32]int)
	var order []uint32
	hasTransparent := false
	for _, fr := range frames {
		if fr == nil {
			continue
		}
		w, h := fr.Width(), fr.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := fr.At(x, y)
				if !rgb555.Opaque(c) {
					hasTransparent = true
					continue
				}
				k := countSnap(c)
				if counts[k] == 0 {
					order = append(order, k)
				}
				counts[k]++
			}
		}
	}

	entries := make([]colorCount, 0, len(order))
	for _, c := range order {
		entries = append(entries, colorCount{c, counts[c]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	// Slot 0 is reserved for "fully transparent" whenever the source had
	// any sub-threshold-alpha pixel, OR its distinct-opaque-color count
	// exceeds limit — both are independently sufficient triggers
	// (spec.md §3, reinforced by §8's boundary behavior for analyze).
	offset := 0
	if hasTransparent || len(entries) > limit {
		offset = 1
	}

	if len(entries)+offset < 2 {
		return haltonicStore()
	}

	s := &Store{}
	if offset == 1 {
		s.Colors[0] = 0
	}

	count := offset
	if len(entries)+offset <= limit {
		for _, e := range entries {
			if count >= 256 {
				break
			}
			s.Colors[count] = e.color
			count++
		}
	} else {
		for _, e := range entries {
			if count >= limit {
				break
			}
			accept := true
			for i := offset; i < count; i++ {
				if Distance(s.Colors[i], e.color) < thresholdPrime {
					accept = false
					break
				}
			}
			if accept {
				s.Colors[count] = e.color
				count++
			}
		}
	}

	s.Count = count
	s.computeBias()
	s.SetDitherStrength(1.0)
	s.BuildIndex()
	return s
}
