package segment

import (
	"github.com/hupe1980/songchain/model"
)

// Window drops query segments outside the configured time range. Segments
// without timing metadata always pass, so untimed catalogs are unaffected.
type Window struct {
	// MaxSeconds drops segments starting at or beyond this offset when
	// non-zero.
	MaxSeconds float64

	// SkipSeconds drops segments starting before this offset.
	SkipSeconds float64

	// SkipEndSeconds drops segments ending within this many seconds of the
	// latest segment end when non-zero.
	SkipEndSeconds float64
}

// WindowFromParams builds the window configured by the search parameters.
func WindowFromParams(p model.SearchParams) Window {
	return Window{
		MaxSeconds:     p.MaxSeconds,
		SkipSeconds:    p.SkipSeconds,
		SkipEndSeconds: p.SkipEndSeconds,
	}
}

// Apply filters the segments. The passes run in a fixed order: the tail cut
// first, relative to the latest segment end of the unfiltered input, then
// the leading cut, then the absolute cap. An empty result is a valid
// outcome, not an error.
func (w Window) Apply(segments []model.Segment) []model.Segment {
	out := segments

	if w.SkipEndSeconds > 0 {
		if maxEnd, ok := maxEndSec(out); ok {
			cutoff := maxEnd - w.SkipEndSeconds
			out = keep(out, func(s model.Segment) bool {
				return s.EndSec == nil || *s.EndSec <= cutoff
			})
		}
	}

	out = keep(out, func(s model.Segment) bool {
		return s.StartSec == nil || *s.StartSec >= w.SkipSeconds
	})

	if w.MaxSeconds > 0 {
		out = keep(out, func(s model.Segment) bool {
			return s.StartSec == nil || *s.StartSec < w.MaxSeconds
		})
	}

	return out
}

func maxEndSec(segments []model.Segment) (float64, bool) {
	var (
		maxEnd float64
		found  bool
	)

	for _, s := range segments {
		if s.EndSec == nil {
			continue
		}
		if !found || *s.EndSec > maxEnd {
			maxEnd = *s.EndSec
			found = true
		}
	}

	return maxEnd, found
}

func keep(in []model.Segment, pred func(model.Segment) bool) []model.Segment {
	out := make([]model.Segment, 0, len(in))
	for _, s := range in {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
