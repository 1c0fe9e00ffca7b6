package renderer

import (
	"bytes"
	"encoding/xml"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/constants"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/dml"
	"github.com/gomutex/godocx/dml/dmlct"
	"github.com/gomutex/godocx/dml/dmlpic"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/cv"
)

// Package parts and relationship types godocx has no API for.
const (
	nsW               = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR               = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	relFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	footerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	docxFooterPart    = "word/footer1.xml"
	docxCorePart      = "docProps/core.xml"
	xmlHeader         = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Field placeholders handed to Labels.PageFooter; the footer replaces them
// with PAGE and NUMPAGES fields.
const (
	docxPageField  = "\x00PAGE\x00"
	docxTotalField = "\x00NUMPAGES\x00"
)

// Page geometry in twentieths of a point (A4, 2 cm margins).
const (
	docxPageWidth   = 11906
	docxPageHeight  = 16838
	docxMargin      = 1134
	docxHdrFtr      = 567
	docxTextWidth   = docxPageWidth - 2*docxMargin
	docxLabelColumn = 2552
	docxPhotoColumn = 2000
	docxCellPadding = 113
	docxPhotoInches = 1.2
)

// DOCXRenderer writes a table-based Word document with godocx.
type DOCXRenderer struct {
	opts   Options
	logger *slog.Logger
}

// NewDOCX returns a Word renderer.
func NewDOCX(opts Options) (r *DOCXRenderer) {
	r = &DOCXRenderer{opts: opts, logger: opts.logger()}
	return r
}

// Format returns FormatDOCX.
func (r *DOCXRenderer) Format() (format Format) {
	format = FormatDOCX
	return format
}

// docxDoc carries the state of one render.
type docxDoc struct {
	doc     *docx.RootDoc
	model   cv.DocumentModel
	bullets int
}

// Render produces the .docx bytes. godocx writes parts in sorted order with
// a fixed timestamp, so identical models yield identical bytes.
func (r *DOCXRenderer) Render(model cv.DocumentModel) (data []byte, err error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		err = errors.Wrap(err, "failed to open DOCX template")
		return data, err
	}

	d := &docxDoc{doc: doc, model: model}
	d.bullets = doc.NewListInstance(2)

	var media *photo
	loaded, loadErr := loadPhoto(model.Header.Photo, r.opts.PublicDir)
	if loadErr != nil {
		r.logger.Warn("rendering DOCX without photo", "photo", shortRef(model.Header.Photo), "error", loadErr)
	} else {
		media = &loaded
	}

	err = d.header(media)
	if err != nil {
		return data, err
	}

	if len(model.Profile) > 0 {
		d.heading(model.Labels.About)
		for _, text := range model.Profile {
			doc.AddParagraph(text)
		}
	}

	d.experiences(model.Labels.Experience, model.Major)
	d.experiences(model.Labels.SmallExperience, model.Small)
	d.skills()
	d.languages()
	d.projects()

	err = d.footer()
	if err != nil {
		return data, err
	}
	d.coreProperties()

	var buf bytes.Buffer
	err = doc.Write(&buf)
	if err != nil {
		err = errors.Wrap(err, "failed to write DOCX")
		return data, err
	}

	data = buf.Bytes()
	return data, err
}

// table adds a borderless table with fixed column widths.
func (d *docxDoc) table(widths ...uint64) (tbl *docx.Table) {
	total := uint64(0)
	for _, w := range widths {
		total += w
	}
	tbl = d.doc.AddTable()
	tbl.Width(int(total), stypes.TableWidthDxa).
		Layout(stypes.TableLayoutFixed).
		Grid(widths...).
		CellMargin(nil, ctypes.NewTableWidth(0, stypes.TableWidthDxa), nil, ctypes.NewTableWidth(docxCellPadding, stypes.TableWidthDxa))
	return tbl
}

func (d *docxDoc) heading(title string) {
	p := d.doc.AddParagraph(title)
	p.Style("Heading1")
}

func (d *docxDoc) header(media *photo) (err error) {
	h := d.model.Header

	var tbl *docx.Table
	if media == nil {
		tbl = d.table(docxTextWidth)
	} else {
		tbl = d.table(docxTextWidth-docxPhotoColumn, docxPhotoColumn)
	}
	row := tbl.AddRow()
	text := row.AddCell()

	text.AddParagraph(h.Name).Style("Title")
	if h.Tagline != "" {
		text.AddParagraph(h.Tagline).Style("Subtitle")
	}
	if h.Description != "" {
		text.AddParagraph(h.Description)
	}
	for _, contact := range h.Contacts {
		p := text.AddEmptyPara()
		p.Spacing(0, 0)
		if contact.Link == "" {
			p.AddText(contact.Value).Color(colorMuted.hex()).Size(9)
			continue
		}
		p.AddLink(contact.Value, contact.Link).Color(colorAccent.hex()).Size(9)
	}

	if media == nil {
		return err
	}

	picture := row.AddCell().AddEmptyPara()
	picture.Justification(stypes.JustificationRight)
	err = d.picture(picture, media)
	return err
}

// picture embeds the photo as an inline drawing. godocx only embeds images
// read from a file path, so the media part and its relationship are
// registered here and the drawing is built from its dml types.
func (d *docxDoc) picture(p *docx.Paragraph, media *photo) (err error) {
	doc := d.doc
	mime, err := docx.MIMEFromExt(media.format)
	if err != nil {
		err = errors.Wrapf(err, "unsupported photo format %s", media.format)
		return err
	}

	known := false
	for _, def := range doc.ContentType.Default {
		if def.Extension == media.format {
			known = true
			break
		}
	}
	if !known {
		err = doc.ContentType.AddExtension(media.format, mime)
		if err != nil {
			err = errors.Wrap(err, "failed to register photo content type")
			return err
		}
	}

	name := "profile." + media.format
	doc.FileMap.Store(constants.MediaPath+name, media.data)
	rID := d.relate(constants.SourceRelationshipImage, "media/"+name)

	doc.ImageCount++
	width := units.Inch(docxPhotoInches).ToEmu()
	height := units.Emu(float64(width) * media.aspect())
	inline := dml.NewInline(
		*dmlct.NewPostvSz2D(width, height),
		dml.DocProp{ID: uint64(doc.ImageCount), Name: "Profile"},
		*dml.NewPicGraphic(dmlpic.NewPic(rID, doc.ImageCount, width, height)),
	)
	drawing := &dml.Drawing{}
	drawing.Inline = append(drawing.Inline, inline)

	ct := p.GetCT()
	ct.Children = append(ct.Children, ctypes.ParagraphChild{
		Run: &ctypes.Run{Children: []ctypes.RunChild{{Drawing: drawing}}},
	})
	return err
}

// relate adds a document relationship and returns its id.
func (d *docxDoc) relate(relType, target string) (id string) {
	document := d.doc.Document
	id = "rId" + strconv.Itoa(document.IncRelationID())
	document.DocRels.Relationships = append(document.DocRels.Relationships, &docx.Relationship{
		ID:     id,
		Type:   relType,
		Target: target,
	})
	return id
}

func (d *docxDoc) experiences(title string, entries []cv.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}
	d.heading(title)

	labels := d.model.Labels
	tbl := d.table(docxLabelColumn, docxTextWidth-docxLabelColumn)
	for _, e := range entries {
		row := tbl.AddRow()

		period := row.AddCell().AddEmptyPara()
		period.AddText(e.Period).Color(colorMuted.hex()).Size(9)

		right := row.AddCell()
		role := right.AddEmptyPara()
		role.Spacing(60, 20)
		role.AddText(e.Title).Bold(true).Size(11)

		company := right.AddEmptyPara()
		company.AddText(joinNonEmpty(" | ", e.Company, e.Location)).Italic(true).Color(colorAccent.hex())

		for _, line := range e.Description {
			p := right.AddEmptyPara()
			p.Numbering(d.bullets, 0)
			prefix, text := labels.Line(line)
			if prefix != "" {
				p.AddText(prefix).Bold(true)
			}
			p.AddText(text)
		}

		if len(e.Tags) > 0 {
			tags := right.AddEmptyPara()
			tags.AddText(strings.Join(e.Tags, " · ")).Italic(true).Color(colorMuted.hex()).Size(8)
		}
	}
}

func (d *docxDoc) skills() {
	m := d.model
	if len(m.SkillBlocks) == 0 {
		return
	}
	d.heading(m.Labels.Skills)

	tbl := d.table(docxLabelColumn, docxTextWidth-docxLabelColumn)
	for _, block := range m.SkillBlocks {
		row := tbl.AddRow()
		row.AddCell().AddEmptyPara().AddText(block.Label).Bold(true)
		row.AddCell().AddParagraph(strings.Join(block.Skills, ", "))
	}
}

func (d *docxDoc) languages() {
	m := d.model
	if len(m.Languages.Entries) == 0 {
		return
	}
	d.heading(m.Languages.Title)

	tbl := d.table(docxLabelColumn, docxTextWidth-docxLabelColumn)
	for _, entry := range m.Languages.Entries {
		filled := clamp(entry.Level, 0, levelDots)
		row := tbl.AddRow()
		row.AddCell().AddParagraph(entry.Name)
		dots := row.AddCell().AddEmptyPara()
		dots.AddText(strings.Repeat("●", filled)).Color(colorAccent.hex())
		dots.AddText(strings.Repeat("○", levelDots-filled)).Color(colorRule.hex())
	}
}

func (d *docxDoc) projects() {
	m := d.model
	if len(m.Projects) == 0 {
		return
	}
	d.heading(m.Labels.Projects)

	for _, p := range m.Projects {
		d.doc.AddParagraph(p.Title).Style("Heading2")
		if p.URL != "" {
			d.doc.AddEmptyParagraph().AddLink(cv.DisplayURL(p.URL), p.URL).Color(colorAccent.hex())
		}
		if p.Description != "" {
			d.doc.AddParagraph(p.Description)
		}
		if len(p.Tags) > 0 {
			d.doc.AddEmptyParagraph().AddText(strings.Join(p.Tags, " · ")).Italic(true).Color(colorMuted.hex()).Size(8)
		}
	}
}

func clamp(v, lo, hi int) (c int) {
	c = v
	if c < lo {
		c = lo
	}
	if c > hi {
		c = hi
	}
	return c
}

// footer adds the page footer part and the A4 section properties. godocx
// cannot create footer parts, and its run model has no fldChar, so the
// footer XML is written here and linked through the library's content types
// and relationships.
func (d *docxDoc) footer() (err error) {
	doc := d.doc
	doc.FileMap.Store(docxFooterPart, []byte(footerXML(d.model)))
	err = doc.ContentType.AddOverride("/"+docxFooterPart, footerContentType)
	if err != nil {
		err = errors.Wrap(err, "failed to register footer part")
		return err
	}
	id := d.relate(relFooter, strings.TrimPrefix(docxFooterPart, "word/"))

	width, height := uint64(docxPageWidth), uint64(docxPageHeight)
	margin, hdrFtr, gutter := docxMargin, docxHdrFtr, 0
	doc.Document.Body.SectPr = &ctypes.SectionProp{
		FooterReference: &ctypes.FooterReference{Type: stypes.HdrFtrDefault, ID: id},
		PageSize:        &ctypes.PageSize{Width: &width, Height: &height},
		PageMargin: &ctypes.PageMargin{
			Top:    &margin,
			Right:  &margin,
			Bottom: &margin,
			Left:   &margin,
			Header: &hdrFtr,
			Footer: &hdrFtr,
			Gutter: &gutter,
		},
	}
	return err
}

// coreProperties replaces the template's metadata part.
func (d *docxDoc) coreProperties() {
	d.doc.FileMap.Store(docxCorePart, []byte(corePropsXML(d.model)))
}

// esc returns s escaped for XML character data and attributes.
func esc(s string) (escaped string) {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	escaped = b.String()
	return escaped
}

func textRun(text string) (s string) {
	s = `<w:r><w:t xml:space="preserve">` + esc(text) + "</w:t></w:r>"
	return s
}

// field renders a complex field such as PAGE or NUMPAGES.
func field(instr string) (s string) {
	s = `<w:r><w:fldChar w:fldCharType="begin"/></w:r>` +
		`<w:r><w:instrText xml:space="preserve"> ` + instr + ` </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="separate"/></w:r>` +
		`<w:r><w:t>1</w:t></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r>`
	return s
}

// pageRuns turns the localized "Page X of Y" text into runs, with the
// placeholders replaced by fields.
func pageRuns(text string) (s string) {
	var b strings.Builder
	for _, part := range strings.SplitAfter(text, "\x00") {
		switch {
		case part == "PAGE\x00":
			b.WriteString(field("PAGE"))
		case part == "NUMPAGES\x00":
			b.WriteString(field("NUMPAGES"))
		case strings.TrimSuffix(part, "\x00") != "":
			b.WriteString(textRun(strings.TrimSuffix(part, "\x00")))
		}
	}
	s = b.String()
	return s
}

func footerXML(m cv.DocumentModel) (s string) {
	page := pageRuns(m.Labels.PageFooter(docxPageField, docxTotalField))

	s = xmlHeader + `<w:ftr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `">` +
		`<w:p><w:pPr><w:pStyle w:val="Footer"/><w:tabs><w:tab w:val="right" w:pos="` + strconv.Itoa(docxTextWidth) + `"/></w:tabs></w:pPr>` +
		textRun(m.FooterStamp()) + `<w:r><w:tab/></w:r>` + page +
		`</w:p></w:ftr>`
	return s
}

func corePropsXML(m cv.DocumentModel) (s string) {
	created := m.GeneratedAt.UTC().Format(time.RFC3339)
	s = xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(m.Header.Name+" - CV") + `</dc:title>` +
		`<dc:creator>` + esc(m.Header.Name) + `</dc:creator>` +
		`<dc:language>` + esc(m.Language.String()) + `</dc:language>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + created + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + created + `</dcterms:modified>` +
		`</cp:coreProperties>`
	return s
}
