package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0
	pdfCoreFamily = "Helvetica"
	pdfFontFamily = "body"
)

type pdfWriter struct {
	pdf       *fpdf.Fpdf
	family    string
	translate func(string) string
}

func newPDFWriter(fontPath string) *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	pw := &pdfWriter{pdf: pdf, family: pdfCoreFamily}
	if fontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", fontPath)
		pw.family = pdfFontFamily
		pw.translate = func(s string) string { return s }
	} else {
		// Core fonts only cover cp1252.
		pw.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return pw
}

func (w *pdfWriter) block(size, height float64, align, text string) {
	w.pdf.SetFont(w.family, "", size)
	w.pdf.MultiCell(0, height, w.translate(text), "", align, false)
}

func (w *pdfWriter) title(text string) {
	w.block(24, 12, "C", text)
	w.pdf.Ln(8)
}

func (w *pdfWriter) heading(text string) {
	w.block(18, 9, "L", text)
	w.pdf.Ln(4)
}

func (w *pdfWriter) subheading(text string) {
	w.block(14, 7, "L", text)
	w.pdf.Ln(1)
}

func (w *pdfWriter) body(text string) {
	w.block(10, 5.6, "L", text)
	w.pdf.Ln(2)
}

// WritePDF renders doc as an A4 PDF. fontPath names a TrueType font with
// the glyphs the text needs; empty uses the built-in Helvetica.
func WritePDF(out io.Writer, doc Document, opts Options, now time.Time, fontPath string) error {
	w := newPDFWriter(fontPath)
	w.pdf.AddPage()

	if opts.IncludeTitle && doc.ProjectName != "" {
		w.title(doc.ProjectName)
	}

	if opts.IncludeCharacters && len(doc.Characters) > 0 {
		w.heading("Characters")
		for _, c := range doc.Characters {
			w.subheading(orUnknown(c.Name))
			w.body("Personality: " + orUnknown(c.Personality))
			w.body("Appearance: " + orUnknown(c.Appearance))
		}
		w.pdf.AddPage()
	}

	if opts.IncludeWorld && !doc.World.IsZero() {
		w.heading("World")
		w.body("Name: " + orUnknown(doc.World.Name))
		w.body("Era: " + orUnknown(doc.World.Era))
		w.body("Overview: " + orUnknown(doc.World.Overview))
		w.pdf.AddPage()
	}

	for i, sc := range doc.Scenes {
		w.heading(fmt.Sprintf("Chapter %d: %s", i+1, sceneTitle(sc)))
		for _, para := range strings.Split(sc.Content, "\n\n") {
			if p := strings.TrimSpace(para); p != "" {
				w.body(p)
			}
		}
		if i < len(doc.Scenes)-1 {
			w.pdf.AddPage()
		}
	}

	w.pdf.Ln(6)
	w.block(8, 4, "C", "Created: "+now.Format(createdLayout))

	if err := w.pdf.Output(out); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
