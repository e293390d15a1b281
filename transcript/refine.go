package transcript

import "unicode/utf8"

// Refinement thresholds. These are empirically chosen tuning knobs; changing
// any of them changes speaker attribution on real meetings, so treat them as
// fixed unless accuracy regresses on new data.
const (
	shortContinuationChars = 8
	shortContinuationGap   = 0.5 // seconds

	residualDuplicateSimilarity = 0.65

	longPauseGap = 2.0 // seconds

	threeInARowGap = 1.5 // seconds

	systemShortChars   = 15
	systemShortGap     = 1.0 // seconds
	systemThemGap      = 1.2 // seconds
	confidenceContinue = 0.8
	confidenceThreeRow = 0.75
	confidenceSystem   = 0.7
)

// RefineSpeakers smooths speaker labels after deduplication using only
// neighbor-to-neighbor heuristics, then drops residual duplicates. Each
// segment is compared to its immediate predecessor and exactly one rule
// applies per pair:
//
//  1. A very short utterance right after the previous segment continues the
//     previous speaker.
//  2. A cross-source pair with similar text is a residual duplicate; the
//     system-side segment is marked SKIP rather than relabeled.
//  3. A pause above two seconds suggests a genuine turn change; the current
//     label is left alone.
//  4. Two preceding segments from the same speaker pull the current segment
//     along when the gap is small.
//  5. Consecutive system-audio segments continue the previous speaker for
//     short utterances, or stay with "Them" to maintain remote-party
//     continuity across system audio chunks.
//
// Segments are mutated in place. The returned slice never contains a segment
// whose speaker is the SKIP sentinel.
func RefineSpeakers(segments []*SpeakerSegment) []*SpeakerSegment {
	for i := 1; i < len(segments); i++ {
		prev := segments[i-1]
		curr := segments[i]
		gap := curr.StartTime.Sub(prev.EndTime).Seconds()

		// Rule 1: short continuation.
		if utf8.RuneCountInString(curr.Text) < shortContinuationChars && gap < shortContinuationGap {
			curr.Speaker = prev.Speaker
			curr.Confidence = confidenceContinue
			continue
		}

		// Rule 2: residual cross-source duplicate that survived dedupe.
		if prev.Source != curr.Source && Similarity(prev.Text, curr.Text) > residualDuplicateSimilarity {
			if prev.Source == SourceSystem {
				prev.Speaker = SpeakerSkip
			} else {
				curr.Speaker = SpeakerSkip
			}
			continue
		}

		// Rule 3: long pause, likely a real turn change.
		if gap > longPauseGap {
			continue
		}

		// Rule 4: three-in-a-row continuation.
		if i >= 2 && segments[i-2].Speaker == prev.Speaker && gap < threeInARowGap {
			curr.Speaker = prev.Speaker
			curr.Confidence = confidenceThreeRow
			continue
		}

		// Rule 5: consecutive system-audio chunks.
		if prev.Source == SourceSystem && curr.Source == SourceSystem {
			if utf8.RuneCountInString(curr.Text) < systemShortChars && gap < systemShortGap {
				curr.Speaker = prev.Speaker
				curr.Confidence = confidenceSystem
			} else if prev.Speaker == SpeakerThem && gap < systemThemGap {
				curr.Speaker = SpeakerThem
			}
		}
	}

	kept := make([]*SpeakerSegment, 0, len(segments))
	for _, seg := range segments {
		if seg.Speaker != SpeakerSkip {
			kept = append(kept, seg)
		}
	}
	return kept
}
