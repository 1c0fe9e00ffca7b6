// Package cv projects bilingual site content into a renderer-agnostic CV
// document. Every ordering, filtering and labeling decision that both the PDF
// and the Word renderer must agree on is made here, once.
package cv

import (
	"time"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

// DocumentModel is the single input to every renderer. It holds resolved
// strings and numbers only, nothing that points back into the content tree.
type DocumentModel struct {
	Language    content.Language
	Header      Header
	Profile     []string
	Major       []ExperienceEntry
	Small       []ExperienceEntry
	SkillBlocks []SkillBlock
	Languages   LanguageBlock
	Projects    []ProjectEntry
	Labels      Labels

	// LastUpdated is the localized month/year stamp, e.g. "Oktober 2026".
	LastUpdated string
	GeneratedAt time.Time
}

// Header is the top block of the CV.
type Header struct {
	Name        string
	Tagline     string
	Description string
	// Photo is a path, URL or data URI as returned by ResolveImage.
	Photo    string
	Contacts []ContactRow
}

// ContactKind identifies a contact row so renderers can pick an icon or link style.
type ContactKind string

// Contact row kinds in display order.
const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactWebsite  ContactKind = "website"
	ContactGithub   ContactKind = "github"
	ContactLinkedin ContactKind = "linkedin"
	ContactBirthday ContactKind = "birthday"
	ContactAddress  ContactKind = "address"
)

// ContactRow is one display line of the contact block. Link is empty for
// rows that are not clickable.
type ContactRow struct {
	Kind  ContactKind
	Value string
	Link  string
}

// ExperienceEntry is a localized experience record.
type ExperienceEntry struct {
	Title       string
	Company     string
	Period      string
	Location    string
	Description []DescriptionLine
	Tags        []string
	LogoURL     string
}

// DescriptionLine is one line of an experience description. The achievement
// prefix is not part of Text; Labels.Line returns it next to the text.
type DescriptionLine struct {
	Text        string
	Achievement bool
}

// SkillBlock is one displayed skill category.
type SkillBlock struct {
	Category string
	Label    string
	Skills   []string
}

// LanguageBlock lists spoken languages with their levels, unfiltered.
type LanguageBlock struct {
	Title   string
	Entries []LanguageEntry
}

// LanguageEntry is one spoken language. Level is 1-5.
type LanguageEntry struct {
	Name  string
	Level int
}

// ProjectEntry is a localized project record.
type ProjectEntry struct {
	Title       string
	Description string
	Tags        []string
	URL         string
}

// FooterStamp is the "last updated" line shared by both renderers.
func (m DocumentModel) FooterStamp() (line string) {
	line = m.Labels.LastUpdated + ": " + m.LastUpdated
	return line
}
