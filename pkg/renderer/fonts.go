package renderer

import (
	_ "embed"

	"github.com/go-pdf/fpdf"
)

// DejaVu Sans Condensed covers Latin Extended and the symbols the layout
// uses. The core PDF fonts only cover cp1252.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte //nolint:gochecknoglobals // Embedded font data

	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte //nolint:gochecknoglobals // Embedded font data

	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte //nolint:gochecknoglobals // Embedded font data
)

// registerFonts adds the UTF-8 font family under pdfFontFamily for the
// styles the layout uses. fpdf records registration errors on the document
// and reports them from Output.
func registerFonts(pdf *fpdf.Fpdf) {
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "I", fontItalic)
}
