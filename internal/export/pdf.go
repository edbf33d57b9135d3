package export

import (
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"unirise-backend/internal/shared/telemetry"
)

// PDFFileName is the attachment name of exported recommendations.
const PDFFileName = "unirise_recommendations.pdf"

const (
	pdfTitle         = "توصياتي للتخصصات الجامعية"
	pdfFallbackTitle = "UniRise - University major recommendations"
	pdfFontFamily    = "UniRiseUTF8"
)

// PDF writes an A4 document holding a title and the recommendation text.
func (r *Renderer) PDF(w io.Writer, text string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(40, 48, 40)
	pdf.SetAutoPageBreak(true, 48)
	pdf.SetTitle("UniRise", true)
	pdf.SetCreator("UniRise", true)

	family, utf8 := r.configurePDFFont(pdf)
	translate := func(s string) string { return s }
	title := pdfTitle
	if !utf8 {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
		title = pdfFallbackTitle
	}

	pdf.AddPage()
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont(family, "B", 18)
	pdf.MultiCell(0, 26, translate(title), "", lineAlign(title), false)
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetLineWidth(0.8)
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(x, y+6, pageW-right, y+6)
	pdf.SetX(left)
	pdf.Ln(18)

	pdf.SetFont(family, "", 12)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pdf.Ln(9)
			continue
		}
		pdf.MultiCell(0, 18, translate(line), "", lineAlign(line), false)
	}
	return pdf.Output(w)
}

func (r *Renderer) configurePDFFont(pdf *gofpdf.Fpdf) (string, bool) {
	path, data := r.font()
	if len(data) > 0 {
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "", data)
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", data)
		// A parse failure is only printed by gofpdf; selecting the family
		// surfaces it as an "undefined font" error.
		pdf.SetFont(pdfFontFamily, "B", 12)
		pdf.SetFont(pdfFontFamily, "", 12)
		err := pdf.Error()
		if err == nil {
			return pdfFontFamily, true
		}
		telemetry.Warn("export.pdf_font_rejected", map[string]any{"path": path, "error": err})
		// gofpdf keeps the first error; drop it so Helvetica output can proceed.
		pdf.ClearError()
	}
	return "Helvetica", false
}

func lineAlign(s string) string {
	if containsArabic(s) {
		return "R"
	}
	return "L"
}
