package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

const (
	Filename    = "customer_feedback_report.pdf"
	ContentType = "application/pdf"
	Title       = "Customer Feedback Insights Report"

	pageSize = "A4"
	// distances in points; vertical ones are measured from the top edge
	marginLeft   = 40.0
	marginTop    = 50.0
	marginBottom = 60.0
	lineHeight   = 14.0
	// WrapWidth is the hard chunk size for summary lines, in runes.
	WrapWidth = 95
)

// Renderer lays out the stats line and AI summary as a paginated PDF.
type Renderer struct {
	// Now stamps the document creation date; defaults to time.Now.
	Now func() time.Time
}

func NewRenderer(now func() time.Time) *Renderer {
	return &Renderer{Now: now}
}

// Render returns the PDF bytes. Empty summaries still produce a one-page document.
func (r *Renderer) Render(summary string, stats feedback.Stats) ([]byte, error) {
	pdf := r.build(summary, stats)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) build(summary string, stats feedback.Stats) *fpdf.Fpdf {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	pdf := fpdf.New("P", "pt", pageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("feedback-analyzer", true)
	pdf.SetCreationDate(now())
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - marginBottom

	pdf.AddPage()
	y := marginTop
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(marginLeft, y, Title)
	y += 30
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(marginLeft, y, StatsLine(stats))
	y += 20
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(marginLeft, y, "AI Summary")
	y += 18
	pdf.SetFont("Helvetica", "", 10)

	pending := false
	for _, chunk := range Wrap(summary, WrapWidth) {
		if pending {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = marginTop
			pending = false
		}
		pdf.Text(marginLeft, y, tr(chunk))
		y += lineHeight
		if y > limit {
			pending = true
		}
	}
	return pdf
}

// StatsLine is the one-line dataset summary under the title.
func StatsLine(s feedback.Stats) string {
	return fmt.Sprintf("Rows: %d  |  Non-empty: %d  |  Avg words: %s", s.RowCount, s.NonEmptyCount, formatAvg(s.AvgWords))
}

// formatAvg prints 2.0 as "2.0" and 1.25 as "1.25".
func formatAvg(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// Wrap splits text into lines and hard-chunks every line into width runes,
// ignoring word boundaries. Empty lines produce no output.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = WrapWidth
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for start := 0; start < len(runes); start += width {
			end := start + width
			if end > len(runes) {
				end = len(runes)
			}
			out = append(out, string(runes[start:end]))
		}
	}
	return out
}
