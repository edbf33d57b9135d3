package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"unirise-backend/internal/majors"
)

// Card dimensions in pixels, sized for social link previews.
const (
	CardWidth  = 1200
	CardHeight = 630

	maxCardEntries = 5
	unnamedMajor   = "(unnamed)"
)

// Card writes a PNG listing the ranked majors.
func (r *Renderer) Card(w io.Writer, recs []majors.Recommendation) error {
	dc := gg.NewContext(CardWidth, CardHeight)

	bg := gg.NewLinearGradient(0, 0, CardWidth, CardHeight)
	bg.AddColorStop(0, color.RGBA{R: 37, G: 99, B: 235, A: 255})
	bg.AddColorStop(1, color.RGBA{R: 99, G: 102, B: 241, A: 255})
	dc.SetFillStyle(bg)
	dc.DrawRectangle(0, 0, CardWidth, CardHeight)
	dc.Fill()

	dc.SetColor(color.RGBA{R: 255, G: 255, B: 255, A: 235})
	dc.DrawRoundedRectangle(60, 150, CardWidth-120, CardHeight-230, 24)
	dc.Fill()

	title, body, small, scalable := r.cardFaces()

	dc.SetColor(color.White)
	dc.SetFontFace(title)
	dc.DrawString("UniRise", 60, 100)

	dc.SetColor(color.RGBA{R: 15, G: 23, B: 42, A: 255})
	dc.SetFontFace(body)
	lines := cardLines(recs)
	y := 215.0
	step := 70.0
	if !scalable {
		step = 28
	}
	for _, line := range lines {
		dc.DrawStringWrapped(line, 100, y, 0, 0, CardWidth-200, 1.2, gg.AlignLeft)
		y += step
	}

	dc.SetColor(color.White)
	dc.SetFontFace(small)
	dc.DrawStringAnchored("unrise-ai.vercel.app", CardWidth-60, CardHeight-35, 1, 0)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// cardLines numbers entries by their position in the model's answer. An
// entry whose major could not be parsed keeps its rank with a placeholder.
func cardLines(recs []majors.Recommendation) []string {
	if len(recs) == 0 {
		return []string{"My university major recommendations"}
	}
	n := min(len(recs), maxCardEntries)
	lines := make([]string, 0, n)
	for i, rec := range recs[:n] {
		name := strings.TrimSpace(rec.Major)
		if name == "" {
			name = unnamedMajor
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, name))
	}
	return lines
}

// cardFaces returns title, body and footer faces. The bool reports whether
// the faces honour the requested sizes.
func (r *Renderer) cardFaces() (font.Face, font.Face, font.Face, bool) {
	if _, data := r.font(); len(data) > 0 {
		if f, err := truetype.Parse(data); err == nil {
			face := func(size float64) font.Face {
				return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
			}
			return face(64), face(44), face(26), true
		}
	}
	return basicfont.Face7x13, basicfont.Face7x13, basicfont.Face7x13, false
}
