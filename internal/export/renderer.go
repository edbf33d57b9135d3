// Package export renders a prediction for sharing: a printable PDF of the
// raw recommendation text and a PNG card listing the ranked majors.
package export

import (
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/golang/freetype/truetype"

	"unirise-backend/internal/shared/telemetry"
)

// Fonts with Arabic coverage commonly found on Linux, macOS and Windows.
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansArabic-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// Renderer produces PDF and PNG exports. The first readable font in
// FontPaths is used for both; without one, output falls back to built-in
// Latin-only fonts.
type Renderer struct {
	FontPaths []string

	once     sync.Once
	fontPath string
	fontData []byte
}

// NewRenderer tries fontPath first, then well-known system fonts.
func NewRenderer(fontPath string) *Renderer {
	paths := make([]string, 0, len(systemFonts)+1)
	if p := strings.TrimSpace(fontPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, systemFonts...)
	return &Renderer{FontPaths: paths}
}

// font returns the bytes of the first readable font that parses as
// TrueType, or nil.
func (r *Renderer) font() (string, []byte) {
	r.once.Do(func() {
		for _, p := range r.FontPaths {
			data, err := os.ReadFile(p)
			if err != nil || len(data) == 0 {
				continue
			}
			if _, err := truetype.Parse(data); err != nil {
				telemetry.Warn("export.font_unusable", map[string]any{"path": p, "error": err})
				continue
			}
			r.fontPath, r.fontData = p, data
			telemetry.Info("export.font_loaded", map[string]any{"path": p})
			return
		}
		if len(r.FontPaths) > 0 {
			telemetry.Warn("export.font_fallback", map[string]any{"tried": len(r.FontPaths)})
		}
	})
	return r.fontPath, r.fontData
}

func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
