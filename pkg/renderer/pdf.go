package renderer

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/cv"
)

// PDF page geometry in millimetres.
const (
	pdfMargin      = 15.0
	pdfPhotoWidth  = 32.0
	pdfLabelColumn = 45.0
	pdfLineHeight  = 5.0
	pdfFooterY     = -12.0
	pdfDotRadius   = 1.3
	pdfDotPitch    = 4.0
	pdfBottomSpace = 20.0
	pdfFontFamily  = "DejaVu"
	pdfPhotoName   = "profile"

	pdfPageCountAlias = "{nb}"
)

// PDFRenderer lays the model out on A4 pages with fpdf.
type PDFRenderer struct {
	opts   Options
	logger *slog.Logger
}

// NewPDF returns a PDF renderer.
func NewPDF(opts Options) (r *PDFRenderer) {
	r = &PDFRenderer{opts: opts, logger: opts.logger()}
	return r
}

// Format returns FormatPDF.
func (r *PDFRenderer) Format() (format Format) {
	format = FormatPDF
	return format
}

// pdfDoc carries the state of one render.
type pdfDoc struct {
	pdf   *fpdf.Fpdf
	model cv.DocumentModel
	width float64
}

// Render produces the PDF bytes. Identical models yield identical bytes.
func (r *PDFRenderer) Render(model cv.DocumentModel) (data []byte, err error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(model.GeneratedAt)
	pdf.SetModificationDate(model.GeneratedAt)

	registerFonts(pdf)

	d := &pdfDoc{
		pdf:   pdf,
		model: model,
	}

	pdf.SetTitle(model.Header.Name+" - CV", true)
	pdf.SetAuthor(model.Header.Name, true)
	pdf.SetCreator("portfolio-cv", false)

	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottomSpace)
	pdf.AliasNbPages(pdfPageCountAlias)
	pdf.SetFooterFunc(d.footer)

	pageWidth, _ := pdf.GetPageSize()
	d.width = pageWidth - 2*pdfMargin

	pdf.AddPage()
	d.header(r.loadPhoto(model.Header.Photo))
	d.profile()
	d.experiences(model.Labels.Experience, model.Major)
	d.experiences(model.Labels.SmallExperience, model.Small)
	d.skills()
	d.languages()
	d.projects()

	var buf bytes.Buffer
	err = pdf.Output(&buf)
	if err != nil {
		err = errors.Wrap(err, "failed to write PDF")
		return data, err
	}

	data = buf.Bytes()
	return data, err
}

// loadPhoto returns nil when the photo cannot be used; the document is then
// rendered without it.
func (r *PDFRenderer) loadPhoto(ref string) (p *photo) {
	loaded, err := loadPhoto(ref, r.opts.PublicDir)
	if err != nil {
		r.logger.Warn("rendering PDF without photo", "photo", shortRef(ref), "error", err)
		return p
	}
	p = &loaded
	return p
}

func (d *pdfDoc) color(c rgb) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

func (d *pdfDoc) header(p *photo) {
	pdf := d.pdf
	textWidth := d.width

	if p != nil {
		textWidth = d.width - pdfPhotoWidth - 5
		opts := fpdf.ImageOptions{ImageType: p.fpdfType()}
		pdf.RegisterImageOptionsReader(pdfPhotoName, opts, bytes.NewReader(p.data))
		pdf.ImageOptions(pdfPhotoName, pdfMargin+d.width-pdfPhotoWidth, pdfMargin, pdfPhotoWidth, pdfPhotoWidth*p.aspect(), false, opts, 0, "")
	}

	h := d.model.Header

	pdf.SetFont(pdfFontFamily, "B", 22)
	d.color(colorText)
	pdf.CellFormat(textWidth, 10, h.Name, "", 1, "L", false, 0, "")

	if h.Tagline != "" {
		pdf.SetFont(pdfFontFamily, "", 13)
		d.color(colorAccent)
		pdf.CellFormat(textWidth, 7, h.Tagline, "", 1, "L", false, 0, "")
	}

	if h.Description != "" {
		pdf.Ln(1)
		pdf.SetFont(pdfFontFamily, "", 10)
		d.color(colorText)
		pdf.MultiCell(textWidth, pdfLineHeight, h.Description, "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont(pdfFontFamily, "", 9)
	for _, row := range h.Contacts {
		d.color(colorMuted)
		if row.Link != "" {
			d.color(colorAccent)
		}
		pdf.CellFormat(textWidth, 4.5, row.Value, "", 1, "L", false, 0, row.Link)
	}

	if p != nil {
		photoBottom := pdfMargin + pdfPhotoWidth*p.aspect()
		if pdf.GetY() < photoBottom {
			pdf.SetY(photoBottom)
		}
	}
}

func (d *pdfDoc) heading(title string) {
	pdf := d.pdf
	pdf.Ln(4)
	pdf.SetFont(pdfFontFamily, "B", 13)
	d.color(colorAccent)
	pdf.CellFormat(d.width, 7, title, "", 1, "L", false, 0, "")
	y := pdf.GetY()
	pdf.SetDrawColor(colorRule.R, colorRule.G, colorRule.B)
	pdf.SetLineWidth(0.3)
	pdf.Line(pdfMargin, y, pdfMargin+d.width, y)
	pdf.Ln(2)
}

func (d *pdfDoc) profile() {
	if len(d.model.Profile) == 0 {
		return
	}
	d.heading(d.model.Labels.About)
	d.pdf.SetFont(pdfFontFamily, "", 10)
	d.color(colorText)
	for _, paragraph := range d.model.Profile {
		d.pdf.MultiCell(d.width, pdfLineHeight, paragraph, "", "L", false)
		d.pdf.Ln(1)
	}
}

func (d *pdfDoc) experiences(title string, entries []cv.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}
	pdf := d.pdf
	d.heading(title)

	periodWidth := 45.0
	for _, e := range entries {
		pdf.SetFont(pdfFontFamily, "B", 11)
		d.color(colorText)
		pdf.CellFormat(d.width-periodWidth, 6, e.Title, "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFontFamily, "", 9)
		d.color(colorMuted)
		pdf.CellFormat(periodWidth, 6, e.Period, "", 1, "R", false, 0, "")

		pdf.SetFont(pdfFontFamily, "I", 10)
		d.color(colorAccent)
		pdf.CellFormat(d.width, pdfLineHeight, joinNonEmpty(" | ", e.Company, e.Location), "", 1, "L", false, 0, "")

		pdf.SetFont(pdfFontFamily, "", 10)
		d.color(colorText)
		for _, line := range e.Description {
			d.descriptionLine(line)
		}

		if len(e.Tags) > 0 {
			pdf.SetFont(pdfFontFamily, "I", 8)
			d.color(colorMuted)
			pdf.MultiCell(d.width, 4, strings.Join(e.Tags, " · "), "", "L", false)
		}
		pdf.Ln(3)
	}
}

// descriptionLine writes one bulleted line, with the achievement prefix in
// bold.
func (d *pdfDoc) descriptionLine(line cv.DescriptionLine) {
	pdf := d.pdf
	indent := 4.0

	pdf.SetX(pdfMargin)
	pdf.CellFormat(indent, pdfLineHeight, "-", "", 0, "L", false, 0, "")
	pdf.SetLeftMargin(pdfMargin + indent)

	prefix, text := d.model.Labels.Line(line)
	if prefix != "" {
		pdf.SetFont(pdfFontFamily, "B", 10)
		pdf.Write(pdfLineHeight, prefix)
		pdf.SetFont(pdfFontFamily, "", 10)
	}
	pdf.Write(pdfLineHeight, text)
	pdf.Ln(pdfLineHeight)

	pdf.SetLeftMargin(pdfMargin)
}

func (d *pdfDoc) skills() {
	if len(d.model.SkillBlocks) == 0 {
		return
	}
	pdf := d.pdf
	d.heading(d.model.Labels.Skills)

	for _, block := range d.model.SkillBlocks {
		pdf.SetFont(pdfFontFamily, "B", 10)
		d.color(colorText)
		pdf.CellFormat(pdfLabelColumn, pdfLineHeight, block.Label, "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFontFamily, "", 10)
		pdf.MultiCell(d.width-pdfLabelColumn, pdfLineHeight, strings.Join(block.Skills, ", "), "", "L", false)
		pdf.Ln(1)
	}
}

func (d *pdfDoc) languages() {
	if len(d.model.Languages.Entries) == 0 {
		return
	}
	pdf := d.pdf
	d.heading(d.model.Languages.Title)

	pdf.SetFillColor(colorAccent.R, colorAccent.G, colorAccent.B)
	pdf.SetDrawColor(colorAccent.R, colorAccent.G, colorAccent.B)
	pdf.SetLineWidth(0.2)

	for _, entry := range d.model.Languages.Entries {
		pdf.SetFont(pdfFontFamily, "", 10)
		d.color(colorText)
		pdf.CellFormat(pdfLabelColumn, pdfLineHeight+1, entry.Name, "", 0, "L", false, 0, "")

		x := pdf.GetX() + pdfDotRadius
		y := pdf.GetY() + (pdfLineHeight+1)/2
		for i := 0; i < levelDots; i++ {
			style := "D"
			if i < entry.Level {
				style = "FD"
			}
			pdf.Circle(x+float64(i)*pdfDotPitch, y, pdfDotRadius, style)
		}
		pdf.Ln(pdfLineHeight + 1)
	}
}

func (d *pdfDoc) projects() {
	if len(d.model.Projects) == 0 {
		return
	}
	pdf := d.pdf
	d.heading(d.model.Labels.Projects)

	for _, p := range d.model.Projects {
		pdf.SetFont(pdfFontFamily, "B", 11)
		d.color(colorText)
		pdf.CellFormat(d.width, 6, p.Title, "", 1, "L", false, 0, p.URL)

		if p.URL != "" {
			pdf.SetFont(pdfFontFamily, "", 8)
			d.color(colorAccent)
			pdf.CellFormat(d.width, 4, cv.DisplayURL(p.URL), "", 1, "L", false, 0, p.URL)
		}

		if p.Description != "" {
			pdf.SetFont(pdfFontFamily, "", 10)
			d.color(colorText)
			pdf.MultiCell(d.width, pdfLineHeight, p.Description, "", "L", false)
		}

		if len(p.Tags) > 0 {
			pdf.SetFont(pdfFontFamily, "I", 8)
			d.color(colorMuted)
			pdf.MultiCell(d.width, 4, strings.Join(p.Tags, " · "), "", "L", false)
		}
		pdf.Ln(3)
	}
}

// footer prints the freshness stamp and "Page X of Y"; fpdf replaces the
// page count alias on output.
func (d *pdfDoc) footer() {
	pdf := d.pdf

	pdf.SetY(pdfFooterY)
	pdf.SetFont(pdfFontFamily, "", 8)
	d.color(colorMuted)

	half := d.width / 2
	pdf.CellFormat(half, 5, d.model.FooterStamp(), "", 0, "L", false, 0, "")
	page := d.model.Labels.PageFooter(strconv.Itoa(pdf.PageNo()), pdfPageCountAlias)
	pdf.CellFormat(half, 5, page, "", 0, "R", false, 0, "")
}

func joinNonEmpty(sep string, parts ...string) (joined string) {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	joined = strings.Join(kept, sep)
	return joined
}

// shortRef keeps data URIs out of log lines.
func shortRef(ref string) (short string) {
	short = ref
	if strings.HasPrefix(ref, "data:") && len(ref) > 32 {
		short = ref[:32] + "..."
	}
	return short
}
