package cv

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

// MaxProjectTags caps the tags shown per project.
const MaxProjectTags = 5

// Project builds the document model for one language. stamp is the moment
// the "last updated" line refers to; passing the same stamp yields the same
// model. When image is zero the hero image URL is used, if any.
func Project(c content.SiteContent, lang content.Language, image ImageSource, stamp time.Time) (m DocumentModel, err error) {
	if !lang.Valid() {
		err = errors.Wrapf(content.ErrUnsupportedLanguage, "%q", lang)
		return m, err
	}

	err = content.CheckShape(c)
	if err != nil {
		return m, err
	}

	if image.IsZero() && c.Hero.ImageURL != "" {
		image = ImagePath(c.Hero.ImageURL)
	}

	var photo string
	photo, err = ResolveImage(image)
	if err != nil {
		err = errors.Wrap(err, "failed to resolve profile image")
		return m, err
	}

	m.Language = lang
	m.Labels = labelsFor(c.SectionTitles, lang)
	m.LastUpdated = FormatStamp(stamp, lang)
	m.GeneratedAt = stamp.UTC()

	m.Header = Header{
		Name:        c.Hero.Name,
		Tagline:     c.Hero.Title.In(lang),
		Description: c.Hero.Description.In(lang),
		Photo:       photo,
		Contacts:    contactRows(c.Contact, lang),
	}

	for _, paragraph := range c.About.Paragraphs {
		if text := paragraph.In(lang); text != "" {
			m.Profile = append(m.Profile, text)
		}
	}

	ranked := Rank(c.Experiences, lang)
	m.Major = experienceEntries(ranked.Major, lang)
	m.Small = experienceEntries(ranked.Small, lang)

	m.SkillBlocks = make([]SkillBlock, 0)
	m.Languages.Title = m.Labels.Languages
	for _, group := range GroupSkills(c.Skills) {
		if group.Category == content.CategoryLanguages {
			for _, skill := range group.Skills {
				m.Languages.Entries = append(m.Languages.Entries, LanguageEntry{
					Name:  skill.Name.In(lang),
					Level: skill.Level,
				})
			}
			continue
		}

		selected := SelectForDisplay(group.Skills)
		if len(selected) == 0 {
			continue
		}

		block := SkillBlock{
			Category: string(group.Category),
			Label:    categoryLabel(c.SkillsSection, group.Category, lang),
			Skills:   make([]string, 0, len(selected)),
		}
		for _, skill := range selected {
			block.Skills = append(block.Skills, skill.Name.In(lang))
		}
		m.SkillBlocks = append(m.SkillBlocks, block)
	}

	m.Projects = make([]ProjectEntry, 0, len(c.Projects))
	for _, p := range c.Projects {
		entry := ProjectEntry{
			Title:       p.Title.In(lang),
			Description: p.Description.In(lang),
			URL:         p.URL,
			Tags:        make([]string, 0, MaxProjectTags),
		}
		for _, tag := range p.Tags {
			if len(entry.Tags) == MaxProjectTags {
				break
			}
			entry.Tags = append(entry.Tags, tag.Resolve(lang))
		}
		m.Projects = append(m.Projects, entry)
	}

	return m, err
}

func experienceEntries(experiences []content.Experience, lang content.Language) (entries []ExperienceEntry) {
	entries = make([]ExperienceEntry, 0, len(experiences))
	for _, e := range experiences {
		entry := ExperienceEntry{
			Title:       e.Title.In(lang),
			Company:     e.Company,
			Period:      e.Period.In(lang),
			Location:    e.Location,
			LogoURL:     e.LogoURL,
			Description: make([]DescriptionLine, 0, len(e.Description)),
			Tags:        make([]string, 0, len(e.Tags)),
		}
		for _, item := range e.Description {
			entry.Description = append(entry.Description, DescriptionLine{
				Text:        item.Text.In(lang),
				Achievement: item.Type == content.DescriptionAchievement,
			})
		}
		for _, tag := range e.Tags {
			entry.Tags = append(entry.Tags, tag.In(lang))
		}
		entries = append(entries, entry)
	}
	return entries
}

func contactRows(contact content.Contact, lang content.Language) (rows []ContactRow) {
	add := func(kind ContactKind, value, link string) {
		if value == "" {
			return
		}
		rows = append(rows, ContactRow{Kind: kind, Value: value, Link: link})
	}

	if contact.Email != "" {
		add(ContactEmail, contact.Email, "mailto:"+contact.Email)
	}
	if contact.Phone != "" {
		add(ContactPhone, contact.Phone, "tel:"+strings.Join(strings.Fields(contact.Phone), ""))
	}
	add(ContactWebsite, DisplayURL(contact.Website), contact.Website)
	add(ContactGithub, SocialHandle(contact.Github, "github.com/"), contact.Github)
	add(ContactLinkedin, SocialHandle(contact.Linkedin, "linkedin.com/in/"), contact.Linkedin)
	add(ContactBirthday, contact.Birthday, "")

	parts := make([]string, 0, 2)
	for _, part := range []string{contact.Address.Street.In(lang), contact.Address.City.In(lang)} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	add(ContactAddress, strings.Join(parts, ", "), "")

	return rows
}

// DisplayURL strips the scheme and any trailing slash from a URL.
func DisplayURL(raw string) (display string) {
	display = strings.TrimSpace(raw)
	for _, scheme := range []string{"https://", "http://"} {
		display = strings.TrimPrefix(display, scheme)
	}
	display = strings.TrimSuffix(display, "/")
	return display
}

// SocialHandle reduces a profile URL to the handle after its canonical
// prefix, e.g. "https://www.github.com/jane/" becomes "jane". URLs on other
// hosts are shown without their scheme.
func SocialHandle(raw, prefix string) (handle string) {
	handle = strings.TrimPrefix(DisplayURL(raw), "www.")
	handle = strings.TrimPrefix(handle, prefix)
	return handle
}
