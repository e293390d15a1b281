package client

import (
	"context"

	"github.com/scribelabs/scribe-cli/transcript"
)

// GetDocumentTranscript fetches the raw transcript segments for a document,
// exactly as the API stored them: unsorted, with both audio sources
// interleaved and duplicates intact.
func (c *Client) GetDocumentTranscript(ctx context.Context, documentID string) ([]transcript.Segment, error) {
	var segments []transcript.Segment
	body := map[string]string{"document_id": documentID}
	if err := c.Post(ctx, "/v1/get-document-transcript", body, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// GetDocumentTranscriptWithSpeakers fetches a document transcript and runs the
// full post-processing pipeline: speaker assignment, cross-source
// deduplication, and speaker refinement. Zero-valued opts select the pipeline
// defaults.
func (c *Client) GetDocumentTranscriptWithSpeakers(ctx context.Context, documentID string, opts transcript.DedupeOptions) ([]*transcript.SpeakerSegment, error) {
	segments, err := c.GetDocumentTranscript(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return transcript.Process(segments, opts)
}
