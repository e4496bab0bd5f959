package palette

import (
	"math"

	"github.com/pixelloom/palettize/rgb555"
)

// BuildIndex fills Mapping for every RGB555 key. Each palette entry's own
// key is pre-marked with its own index; every other key is assigned the
// index of the minimum-distance entry among Colors[1:Count]. Index 0 is
// never chosen by the search, even when the palette doesn't reserve a
// transparent slot there. Index 0's pre-mark writes a 0, which the search
// treats as unset, so Colors[0]'s own key is searched like any other key
// and no key ends up mapped to 0.
func (s *Store) BuildIndex() {
	for i := range s.Mapping {
		s.Mapping[i] = 0
	}
	for i := 0; i < s.Count; i++ {
		s.Mapping[rgb555.KeyRGBA(s.Colors[i])] = byte(i)
	}

	for key := 0; key < len(s.Mapping); key++ {
		if s.Mapping[key] != 0 {
			continue
		}
		r, g, b := rgb555.Expand(uint16(key))
		candidate := rgb555.Pack(r, g, b, 0xFF)

		best, bestDist := 1, math.Inf(1)
		for i := 1; i < s.Count; i++ {
			d := Distance(s.Colors[i], candidate)
			if d < bestDist {
				bestDist, best = d, i
			}
		}
		s.Mapping[key] = byte(best)
	}
}
