// Package transcript implements post-processing for Scribe meeting transcripts:
// source-based speaker tagging, cross-source deduplication, heuristic speaker
// refinement, and markdown export.
//
// The platform records two audio paths per meeting - the local microphone and
// the system (remote-party) audio - so the raw transcript usually contains the
// same utterance twice. The pipeline collapses those duplicates and smooths the
// resulting speaker labels with local, neighbor-to-neighbor heuristics.
package transcript

import (
	"fmt"
	"sort"
	"time"
)

// Audio capture sources reported by the transcript endpoint.
const (
	SourceMicrophone = "microphone"
	SourceSystem     = "system"
)

// Conventional speaker labels. SpeakerSkip is a sentinel marking a segment for
// removal during refinement; it never survives into pipeline output.
const (
	SpeakerMe      = "Me"
	SpeakerThem    = "Them"
	SpeakerUnknown = "Unknown"
	SpeakerSkip    = "SKIP"
)

// Segment is one raw timestamped unit of transcribed speech as returned by the
// get-document-transcript endpoint. Immutable once fetched.
type Segment struct {
	Text           string `json:"text"`
	StartTimestamp string `json:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp"`
	Source         string `json:"source"`
	DocumentID     string `json:"document_id,omitempty"`
}

// SpeakerSegment extends a raw segment with a speaker label, parsed times, and
// a confidence score in [0,1]. Created by AssignSpeakers and mutated in place
// by the refinement pass.
type SpeakerSegment struct {
	Segment

	Speaker    string
	StartTime  time.Time
	EndTime    time.Time
	Confidence float64
}

// parseTimestamp parses an ISO 8601 timestamp, with or without fractional
// seconds. Malformed timestamps are hard errors: the dedupe and refinement
// passes depend on correct temporal ordering, so a bad timestamp must not be
// silently treated as the zero time.
func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return ts, nil
}

// AssignSpeakers converts raw segments into speaker-tagged segments using the
// capture source: microphone audio is the local participant ("Me"), system
// audio is the remote party ("Them"). The result is sorted ascending by start
// time, which the downstream passes require.
func AssignSpeakers(segments []Segment) ([]*SpeakerSegment, error) {
	tagged := make([]*SpeakerSegment, 0, len(segments))
	for _, seg := range segments {
		start, err := parseTimestamp(seg.StartTimestamp)
		if err != nil {
			return nil, err
		}
		end, err := parseTimestamp(seg.EndTimestamp)
		if err != nil {
			return nil, err
		}

		speaker := SpeakerUnknown
		switch seg.Source {
		case SourceMicrophone:
			speaker = SpeakerMe
		case SourceSystem:
			speaker = SpeakerThem
		}

		tagged = append(tagged, &SpeakerSegment{
			Segment:    seg,
			Speaker:    speaker,
			StartTime:  start,
			EndTime:    end,
			Confidence: 1.0,
		})
	}

	sortByStartTime(tagged)
	return tagged, nil
}

// sortByStartTime sorts segments ascending by start time. The sort is stable
// so that equal-timestamp segments keep their original relative order.
func sortByStartTime(segments []*SpeakerSegment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartTime.Before(segments[j].StartTime)
	})
}

// Process runs the full post-processing pipeline over raw segments: speaker
// assignment, cross-source deduplication, and speaker refinement.
func Process(segments []Segment, opts DedupeOptions) ([]*SpeakerSegment, error) {
	tagged, err := AssignSpeakers(segments)
	if err != nil {
		return nil, err
	}
	deduped := Deduplicate(tagged, opts)
	return RefineSpeakers(deduped), nil
}
