package transcript

import (
	"time"
	"unicode/utf8"
)

// Dedupe defaults, tuned against recorded two-source meetings.
const (
	DefaultSimilarityThreshold = 0.68
	DefaultTimeWindow          = 4500 * time.Millisecond

	// nearExactThreshold treats same-source pairs above this score as the
	// same utterance regardless of which one is longer.
	nearExactThreshold = 0.95
)

// DedupeOptions controls the deduplication pass. Zero values select the
// package defaults.
type DedupeOptions struct {
	// SimilarityThreshold is the minimum Similarity score for two segments
	// to be considered the same utterance.
	SimilarityThreshold float64

	// TimeWindow bounds how far ahead of a segment's start time candidate
	// duplicates are searched for.
	TimeWindow time.Duration
}

func (o DedupeOptions) withDefaults() DedupeOptions {
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.TimeWindow == 0 {
		o.TimeWindow = DefaultTimeWindow
	}
	return o
}

// Deduplicate collapses segments that represent the same utterance captured
// twice - once via the microphone and once via system audio - into a single
// kept segment. The input is re-sorted ascending by start time, so callers may
// supply unsorted sequences. Survivors keep their relative order.
//
// The pass is idempotent: running it on its own output removes nothing further.
func Deduplicate(segments []*SpeakerSegment, opts DedupeOptions) []*SpeakerSegment {
	opts = opts.withDefaults()

	if len(segments) == 0 {
		return []*SpeakerSegment{}
	}

	sortByStartTime(segments)

	removed := make([]bool, len(segments))
	for i, seg := range segments {
		if removed[i] {
			continue
		}

		windowEnd := seg.StartTime.Add(opts.TimeWindow)
		for j := i + 1; j < len(segments) && !segments[j].StartTime.After(windowEnd); j++ {
			if removed[j] {
				continue
			}

			other := segments[j]
			score := Similarity(seg.Text, other.Text)
			if score < opts.SimilarityThreshold {
				continue
			}

			if seg.Source != other.Source {
				// Cross-source duplicate: the microphone capture is the
				// cleaner signal, keep it.
				if seg.Source == SourceMicrophone {
					removed[j] = true
					continue
				}
				removed[i] = true
				break
			}

			// Same source: keep the earlier segment on a near-exact match or
			// when it is at least as long; otherwise the later segment
			// supersedes it.
			if score > nearExactThreshold || utf8.RuneCountInString(seg.Text) >= utf8.RuneCountInString(other.Text) {
				removed[j] = true
				continue
			}
			removed[i] = true
			break
		}
	}

	kept := make([]*SpeakerSegment, 0, len(segments))
	for i, seg := range segments {
		if !removed[i] {
			kept = append(kept, seg)
		}
	}
	return kept
}
