package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSpeakers(t *testing.T) {
	raw := []Segment{
		{Text: "hello", StartTimestamp: "2026-08-12T15:00:00Z", EndTimestamp: "2026-08-12T15:00:01Z", Source: SourceMicrophone},
		{Text: "hi there", StartTimestamp: "2026-08-12T15:00:01.500Z", EndTimestamp: "2026-08-12T15:00:02.250Z", Source: SourceSystem},
		{Text: "mystery", StartTimestamp: "2026-08-12T15:00:03Z", EndTimestamp: "2026-08-12T15:00:04Z", Source: "dictation"},
	}

	got, err := AssignSpeakers(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, SpeakerMe, got[0].Speaker)
	assert.Equal(t, SpeakerThem, got[1].Speaker)
	assert.Equal(t, SpeakerUnknown, got[2].Speaker)

	assert.Equal(t, time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC), got[0].StartTime)
	assert.Equal(t, time.Date(2026, 8, 12, 15, 0, 1, 500_000_000, time.UTC), got[1].StartTime)
	for _, s := range got {
		assert.Equal(t, 1.0, s.Confidence)
	}
}

// TestAssignSpeakersSortsByStartTime verifies the ordering invariant is
// established even when the endpoint returns segments out of order.
func TestAssignSpeakersSortsByStartTime(t *testing.T) {
	raw := []Segment{
		{Text: "second", StartTimestamp: "2026-08-12T15:00:05Z", EndTimestamp: "2026-08-12T15:00:06Z", Source: SourceMicrophone},
		{Text: "first", StartTimestamp: "2026-08-12T15:00:00Z", EndTimestamp: "2026-08-12T15:00:01Z", Source: SourceSystem},
	}

	got, err := AssignSpeakers(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
}

// TestAssignSpeakersMalformedTimestamp verifies malformed timestamps fail fast
// instead of degrading into epoch ordering.
func TestAssignSpeakersMalformedTimestamp(t *testing.T) {
	raw := []Segment{
		{Text: "bad", StartTimestamp: "yesterday-ish", EndTimestamp: "2026-08-12T15:00:01Z", Source: SourceMicrophone},
	}

	_, err := AssignSpeakers(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yesterday-ish")
}

func TestProcessPipeline(t *testing.T) {
	raw := []Segment{
		{Text: "Hello there", StartTimestamp: "2026-08-12T15:00:00Z", EndTimestamp: "2026-08-12T15:00:01Z", Source: SourceMicrophone},
		{Text: "Hello there", StartTimestamp: "2026-08-12T15:00:00.500Z", EndTimestamp: "2026-08-12T15:00:01.500Z", Source: SourceSystem},
		{Text: "General Kenobi", StartTimestamp: "2026-08-12T15:00:02Z", EndTimestamp: "2026-08-12T15:00:03Z", Source: SourceSystem},
	}

	got, err := Process(raw, DedupeOptions{})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Hello there", got[0].Text)
	assert.Equal(t, SourceMicrophone, got[0].Source)
	for _, s := range got {
		assert.NotEqual(t, SpeakerSkip, s.Speaker)
	}
}

func TestProcessEmpty(t *testing.T) {
	got, err := Process(nil, DedupeOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
