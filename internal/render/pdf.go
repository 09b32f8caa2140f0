package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/Harsha2318/GenAI-Roadmap-Agent/internal/roadmap"
)

const (
	pdfMargin    = 40.0
	pdfLineSpace = 18.0
	// Start a new page when less vertical space than this remains.
	pdfPageBreakAt = 80.0
)

// pdfWriter tracks a vertical cursor down a page, wrapping long lines and
// breaking pages when space runs out.
type pdfWriter struct {
	doc        *fpdf.Fpdf
	pageWidth  float64
	pageHeight float64
	y          float64
}

func (w *pdfWriter) drawWrapped(text string, x float64, style string, size float64) {
	w.doc.SetFont("Helvetica", style, size)
	maxWidth := w.pageWidth - pdfMargin - x
	for _, line := range w.doc.SplitText(text, maxWidth) {
		if w.y > w.pageHeight-pdfPageBreakAt {
			w.doc.AddPage()
			w.y = pdfMargin
		}
		w.doc.Text(x, w.y, line)
		w.y += pdfLineSpace
	}
}

// PDF renders the document as a paginated Letter-sized PDF and returns the
// raw bytes.
func PDF(doc roadmap.Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	w := &pdfWriter{doc: pdf, pageWidth: pageWidth, pageHeight: pageHeight, y: pdfMargin + pdfLineSpace}

	title := doc.Title
	if title == "" {
		title = "GenAI Roadmap"
	}
	w.drawWrapped(title, pdfMargin, "B", 16)
	w.y += 8
	w.drawWrapped(fmt.Sprintf("Duration: %d days | Total Hours: %d", doc.DurationDays, doc.TotalEstimatedHours), pdfMargin, "", 12)
	w.y += 12

	for _, level := range doc.Levels {
		w.drawWrapped(fmt.Sprintf("Level %d: %s (Est. %d hrs)", level.Level, level.Title, level.EstimatedHours), pdfMargin, "B", 13)
		w.y += 4
		for _, topic := range level.Topics {
			w.drawWrapped(fmt.Sprintf("- Topic: %s", topic.Topic), pdfMargin+10, "B", 11)
			w.drawWrapped(fmt.Sprintf("Activity: %s", topic.Activity), pdfMargin+30, "", 11)
			w.drawWrapped(fmt.Sprintf("Est. Hours: %d", topic.EstimatedHours), pdfMargin+30, "", 11)
			w.drawWrapped(fmt.Sprintf("Justification: %s", topic.Justification), pdfMargin+30, "I", 11)
			w.y += 8
		}
		w.y += 8
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
