package cv

import (
	"strconv"
	"time"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

// Labels are the fixed strings renderers print around the content.
type Labels struct {
	About           string
	Experience      string
	SmallExperience string
	Skills          string
	Languages       string
	Projects        string
	Contact         string
	Achievement     string
	Page            string
	Of              string
	LastUpdated     string
}

// Line splits a description line into the achievement prefix, empty when it
// does not apply, and the text. Renderers style the two parts separately.
func (l Labels) Line(d DescriptionLine) (prefix string, text string) {
	text = d.Text
	if d.Achievement && l.Achievement != "" {
		prefix = l.Achievement + " "
	}
	return prefix, text
}

// PageFooter formats "Page X of Y" in the label language. Page and total are
// passed as text so renderers can hand in page-count placeholders that are
// only resolved when the document is written.
func (l Labels) PageFooter(page, total string) (text string) {
	text = l.Page + " " + page + " " + l.Of + " " + total
	return text
}

//nolint:gochecknoglobals // Static label tables
var builtinLabels = map[content.Language]Labels{
	content.English: {
		About:           "Profile",
		Experience:      "Professional Experience",
		SmallExperience: "Further Projects",
		Skills:          "Skills",
		Languages:       "Languages",
		Projects:        "Projects",
		Contact:         "Contact",
		Achievement:     "Achievement:",
		Page:            "Page",
		Of:              "of",
		LastUpdated:     "Last updated",
	},
	content.German: {
		About:           "Profil",
		Experience:      "Berufserfahrung",
		SmallExperience: "Weitere Projekte",
		Skills:          "Kenntnisse",
		Languages:       "Sprachen",
		Projects:        "Projekte",
		Contact:         "Kontakt",
		Achievement:     "Erfolg:",
		Page:            "Seite",
		Of:              "von",
		LastUpdated:     "Zuletzt aktualisiert",
	},
}

//nolint:gochecknoglobals // Static label tables
var builtinCategoryLabels = map[content.SkillCategory]content.LocalizedString{
	content.CategoryProgramming: content.L("Programming Languages", "Programmiersprachen"),
	content.CategoryFrontend:    content.L("Frontend", "Frontend"),
	content.CategoryBackend:     content.L("Backend", "Backend"),
	content.CategoryDatabase:    content.L("Databases", "Datenbanken"),
	content.CategoryDevOps:      content.L("DevOps", "DevOps"),
	content.CategoryCloud:       content.L("Cloud", "Cloud"),
	content.CategoryTools:       content.L("Tools", "Werkzeuge"),
	content.CategoryMethods:     content.L("Methods", "Methoden"),
	content.CategoryLanguages:   content.L("Languages", "Sprachen"),
}

//nolint:gochecknoglobals // Static month tables
var monthNames = map[content.Language][12]string{
	content.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	content.German: {
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	},
}

//nolint:gochecknoglobals // Sentinel words marking an ongoing period
var presentSentinels = map[content.Language]string{
	content.English: "Present",
	content.German:  "Heute",
}

// labelsFor merges the built-in labels with any section titles the content
// overrides.
func labelsFor(titles content.SectionTitles, lang content.Language) (labels Labels) {
	labels = builtinLabels[lang]

	override := func(target *string, field content.LocalizedString) {
		if text := field.In(lang); text != "" {
			*target = text
		}
	}

	override(&labels.About, titles.About)
	override(&labels.Experience, titles.Experience)
	override(&labels.SmallExperience, titles.SmallScale)
	override(&labels.Skills, titles.Skills)
	override(&labels.Languages, titles.Languages)
	override(&labels.Projects, titles.Projects)
	override(&labels.Contact, titles.Contact)
	override(&labels.Achievement, titles.Achievement)

	return labels
}

// categoryLabel resolves a category heading: content first, then the
// built-in table, then the raw key.
func categoryLabel(section content.SkillsSection, category content.SkillCategory, lang content.Language) (label string) {
	if text := section.Categories[category].In(lang); text != "" {
		label = text
		return label
	}
	if text := builtinCategoryLabels[category].In(lang); text != "" {
		label = text
		return label
	}
	label = string(category)
	return label
}

// FormatStamp renders t as a localized "Month YYYY" string.
func FormatStamp(t time.Time, lang content.Language) (stamp string) {
	names, ok := monthNames[lang]
	if !ok {
		names = monthNames[content.English]
	}
	stamp = names[t.Month()-1] + " " + strconv.Itoa(t.Year())
	return stamp
}
