package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"bookflow/internal/config"
)

const (
	titleFontSize = 14
	bodyFontSize  = 11
	pageMargin    = 15
	utf8FontName  = "DejaVu"
)

// BookChapter is one chapter of a combined book PDF.
type BookChapter struct {
	Title   string
	Content string
}

// PDFRenderer writes chapter and book PDFs. With a UTF-8 font file configured
// it embeds that font; otherwise it falls back to a core font with latin-1
// translation.
type PDFRenderer struct {
	fontPath string
}

func NewPDFRenderer(cfg *config.RenderConfig) *PDFRenderer {
	return &PDFRenderer{fontPath: cfg.FontPath}
}

// Chapter writes a single-chapter PDF: title block then body text.
func (r *PDFRenderer) Chapter(title, content, outPath string) error {
	pdf, family, tr := r.newPDF()
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont(family, "", titleFontSize)
	pdf.MultiCell(0, 10, tr(title+"\n\n"), "", "L", false)
	pdf.SetFont(family, "", bodyFontSize)
	pdf.MultiCell(0, 8, tr(content), "", "L", false)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return &Error{Kind: "pdf", Err: err}
	}
	return nil
}

// Book writes one combined PDF with a page run per chapter, numbered in
// walk order.
func (r *PDFRenderer) Book(chapters []BookChapter, outPath string) error {
	pdf, family, tr := r.newPDF()
	for i, chapter := range chapters {
		pdf.AddPage()
		pdf.SetFont(family, "", titleFontSize)
		pdf.MultiCell(0, 10, tr(fmt.Sprintf("Chapter %d: %s\n\n", i+1, chapter.Title)), "", "L", false)
		pdf.SetFont(family, "", bodyFontSize)
		pdf.MultiCell(0, 8, tr(chapter.Content), "", "L", false)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return &Error{Kind: "pdf", Err: err}
	}
	return nil
}

func (r *PDFRenderer) newPDF() (*fpdf.Fpdf, string, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	if r.fontPath != "" {
		pdf.AddUTF8Font(utf8FontName, "", r.fontPath)
		return pdf, utf8FontName, func(s string) string { return s }
	}
	return pdf, "Arial", pdf.UnicodeTranslatorFromDescriptor("")
}
