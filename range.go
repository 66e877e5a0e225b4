package gallium

import (
	"errors"
	"fmt"
	"slices"
)

// textRange is one {start, end, replacement} edit against the original
// source. A zero-length range is a pure insertion point.
type textRange struct {
	start int
	end   int
	repl  []byte
}

// editPlan is what an executor hands the composer: the ranges to
// apply, and, for a relocating edit, the byte offset at which the
// element lands in the output (-1 otherwise).
type editPlan struct {
	ranges   []textRange
	newStart int
}

var errOverlappingRanges = errors.New("overlapping edit ranges")

// applyRanges splices the ranges into src. Ranges are applied in
// descending start order (ties broken by descending end) so the
// offsets of a not-yet-applied range stay valid; any future multi-range
// operation composes through here rather than doing its own offset
// math. Overlapping ranges violate an internal invariant and are
// rejected.
func applyRanges(src []byte, ranges []textRange) ([]byte, error) {
	rs := slices.Clone(ranges)
	slices.SortFunc(rs, func(a, b textRange) int {
		if a.start != b.start {
			return b.start - a.start
		}
		return b.end - a.end
	})

	for i, r := range rs {
		if r.start < 0 || r.end < r.start || r.end > len(src) {
			return nil, fmt.Errorf("edit range [%d,%d) out of bounds for %d bytes", r.start, r.end, len(src))
		}
		if i > 0 && r.end > rs[i-1].start {
			return nil, fmt.Errorf("%w: [%d,%d) and [%d,%d)", errOverlappingRanges, r.start, r.end, rs[i-1].start, rs[i-1].end)
		}
	}

	out := slices.Clone(src)
	for _, r := range rs {
		out = slices.Concat(out[:r.start], r.repl, out[r.end:])
	}
	return out, nil
}
