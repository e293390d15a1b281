package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribelabs/scribe-cli/transcript"
)

// Transcript command flags.
var (
	transcriptOut       string
	transcriptRaw       bool
	transcriptThreshold float64
	transcriptWindow    time.Duration
)

// NewTranscriptCommand creates the transcript command group.
func NewTranscriptCommand() *cobra.Command {
	transcriptCmd := &cobra.Command{
		Use:   "transcript",
		Short: "Fetch and export meeting transcripts",
	}

	exportCmd := &cobra.Command{
		Use:   "export <document-id>",
		Short: "Export a transcript as speaker-grouped markdown",
		Long: `Fetch a document's transcript, run the post-processing pipeline
(speaker assignment, cross-source deduplication, speaker refinement), and
render speaker-grouped markdown.

Output goes to stdout unless --out is given. --raw skips deduplication and
refinement, keeping one line per raw segment.

Examples:
  scribe transcript export doc-123
  scribe transcript export doc-123 --out meeting.md
  scribe transcript export doc-123 --threshold 0.75 --window 3s`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscriptExport,
	}
	exportCmd.Flags().StringVar(&transcriptOut, "out", "", "Write markdown to this file instead of stdout")
	exportCmd.Flags().BoolVar(&transcriptRaw, "raw", false, "Skip deduplication and speaker refinement")
	exportCmd.Flags().Float64Var(&transcriptThreshold, "threshold", 0, "Similarity threshold for deduplication (default 0.68)")
	exportCmd.Flags().DurationVar(&transcriptWindow, "window", 0, "Time window for duplicate search (default 4.5s)")

	transcriptCmd.AddCommand(exportCmd)
	return transcriptCmd
}

func runTranscriptExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	c := apiClient(cfg)
	documentID := args[0]

	var segments []*transcript.SpeakerSegment
	if transcriptRaw {
		raw, err := c.GetDocumentTranscript(cmd.Context(), documentID)
		if err != nil {
			return fmt.Errorf("fetching transcript: %w", err)
		}
		segments, err = transcript.AssignSpeakers(raw)
		if err != nil {
			return fmt.Errorf("processing transcript: %w", err)
		}
	} else {
		opts := transcript.DedupeOptions{
			SimilarityThreshold: transcriptThreshold,
			TimeWindow:          transcriptWindow,
		}
		segments, err = c.GetDocumentTranscriptWithSpeakers(cmd.Context(), documentID, opts)
		if err != nil {
			return fmt.Errorf("fetching transcript: %w", err)
		}
	}

	if transcriptOut != "" {
		if err := transcript.ExportMarkdownFile(transcriptOut, segments); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d segments to %s\n", len(segments), transcriptOut)
		return nil
	}

	return transcript.WriteMarkdown(cmd.OutOrStdout(), segments)
}
