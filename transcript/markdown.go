package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteMarkdown renders a refined segment sequence as speaker-grouped
// markdown. Consecutive same-speaker segments share one heading; every line
// carries two trailing spaces so markdown renders a hard line break.
func WriteMarkdown(w io.Writer, segments []*SpeakerSegment) error {
	var (
		speaker string
		lines   []string
	)

	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		if _, err := fmt.Fprintf(w, "%s:  \n", speaker); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "%s  \n", line); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		lines = lines[:0]
		return nil
	}

	for _, seg := range segments {
		if seg.Speaker != speaker {
			if err := flush(); err != nil {
				return err
			}
			speaker = seg.Speaker
		}
		lines = append(lines, seg.Text)
	}
	return flush()
}

// ExportMarkdownFile writes the markdown rendering to a UTF-8 text file at
// the given path, creating or truncating it.
func ExportMarkdownFile(path string, segments []*SpeakerSegment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating markdown file: %w", err)
	}

	buf := bufio.NewWriter(f)
	if err := WriteMarkdown(buf, segments); err != nil {
		f.Close()
		return fmt.Errorf("writing markdown: %w", err)
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing markdown: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing markdown file: %w", err)
	}
	return nil
}
