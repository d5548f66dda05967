// Package report - Markdown reports of detection runs.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/models"
)

// Entry is the detection outcome of one image.
type Entry struct {
	Path    string
	Crop    models.Crop
	Width   int
	Height  int
	Elapsed time.Duration
	Boxes   []common.BoundingBox
	Err     error
}

// WriteDetections renders a markdown report with one section per image.
//
// Arguments:
//   - w: The destination.
//   - entries: The detection outcomes in display order.
//
// Returns:
//   - error: The write error, if any.
func WriteDetections(w io.Writer, entries []Entry) error {
	md := markdown.NewMarkdown(w)
	md.H1("Tranquil Trails Detection Report")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No images processed.")
		return md.Build()
	}

	for _, e := range entries {
		writeEntry(md, e)
	}

	return md.Build()
}

func writeEntry(md *markdown.Markdown, e Entry) {
	md.H2(filepath.Base(e.Path))
	md.PlainText("")

	if e.Err != nil {
		md.Cautionf("Detection failed: %v", e.Err)
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Model", "Size", "Elapsed", "Detections"},
		Rows: [][]string{{
			fmt.Sprintf("%s (model %d)", e.Crop.DisplayName(), e.Crop.ModelIndex()),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			e.Elapsed.Round(time.Millisecond).String(),
			fmt.Sprintf("%d", len(e.Boxes)),
		}},
	})
	md.PlainText("")

	if len(e.Boxes) == 0 {
		md.PlainText("No objects detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(e.Boxes))
	for _, b := range e.Boxes {
		rows = append(rows, []string{
			b.Label,
			fmt.Sprintf("%.2f", b.Confidence),
			fmt.Sprintf("(%.0f, %.0f) - (%.0f, %.0f)", b.X1, b.Y1, b.X2, b.Y2),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Label", "Confidence", "Box"},
		Rows:   rows,
	})
	md.PlainText("")
}
