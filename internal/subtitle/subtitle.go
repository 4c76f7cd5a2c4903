package subtitle

import (
	"fmt"
	"sort"
	"time"
)

// represents single timed subtitle cue
type Cue struct {
	Index int // 1-based position among parsed cues, in file order
	Start time.Duration
	End   time.Duration
	Text  string
}

// Active reports whether the cue is shown at t. End is exclusive.
func (c Cue) Active(t time.Duration) bool {
	return c.Start <= t && t < c.End
}

// Sequence is an immutable list of cues sorted by start time. Cues with
// equal starts keep their file order.
type Sequence struct {
	cues    []Cue
	maxSpan time.Duration
}

func NewSequence(cues []Cue) Sequence {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var maxSpan time.Duration
	for _, c := range sorted {
		if span := c.End - c.Start; span > maxSpan {
			maxSpan = span
		}
	}

	return Sequence{cues: sorted, maxSpan: maxSpan}
}

func (s Sequence) Len() int {
	return len(s.cues)
}

func (s Sequence) At(i int) Cue {
	return s.cues[i]
}

// Cues returns a copy of the underlying cues.
func (s Sequence) Cues() []Cue {
	out := make([]Cue, len(s.cues))
	copy(out, s.cues)
	return out
}

// End returns the latest end time of any cue.
func (s Sequence) End() time.Duration {
	var end time.Duration
	for _, c := range s.cues {
		if c.End > end {
			end = c.End
		}
	}
	return end
}

// ActiveAt returns every cue with Start <= t < End in sequence order, or nil
// when nothing is shown at t.
//
// A cue starting at or before t-maxSpan has already ended, so only the window
// (t-maxSpan, t] of start times needs scanning.
func (s Sequence) ActiveAt(t time.Duration) []Cue {
	if t < 0 {
		t = 0
	}

	hi := sort.Search(len(s.cues), func(i int) bool {
		return s.cues[i].Start > t
	})
	floor := t - s.maxSpan
	lo := sort.Search(hi, func(i int) bool {
		return s.cues[i].Start > floor
	})

	var active []Cue
	for _, c := range s.cues[lo:hi] {
		if c.End > t {
			active = append(active, c)
		}
	}
	return active
}

// represents supported subtitle formats
type Format string

const (
	FormatUnknown Format = ""
	FormatSRT     Format = "srt"
	FormatVTT     Format = "vtt"
	FormatASS     Format = "ass"
)

// ParseFormat maps a user supplied name to a Format. "auto" and "" select
// detection.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "auto":
		return FormatUnknown, nil
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	default:
		return FormatUnknown, fmt.Errorf(
			"unsupported format %q: use srt, vtt, ass, ssa or auto",
			name,
		)
	}
}

// skipped block or line, reported instead of failing the whole file
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// outcome of parsing one subtitle file
type Result struct {
	Format   Format
	Cues     Sequence
	Warnings []Warning
}
