package content

// SiteContent is the complete bilingual site content. It is owned by the
// content loader and treated as read-only by everything downstream.
type SiteContent struct {
	Hero          Hero          `json:"hero" yaml:"hero"`
	About         About         `json:"about" yaml:"about"`
	Experiences   []Experience  `json:"experiences" yaml:"experiences"`
	Projects      []Project     `json:"projects,omitempty" yaml:"projects,omitempty"`
	Skills        []Skill       `json:"skills" yaml:"skills"`
	SkillsSection SkillsSection `json:"skillsSection" yaml:"skillsSection"`
	Contact       Contact       `json:"contact" yaml:"contact"`
	Imprint       Imprint       `json:"imprint" yaml:"imprint"`
	Footer        Footer        `json:"footer" yaml:"footer"`
	SectionTitles SectionTitles `json:"sectionTitles" yaml:"sectionTitles"`
}

// Hero is the landing block: who and what.
type Hero struct {
	Name        string          `json:"name" yaml:"name"`
	Title       LocalizedString `json:"title" yaml:"title"`
	Description LocalizedString `json:"description" yaml:"description"`
	ImageURL    string          `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// About holds the free-form introduction.
type About struct {
	Title      LocalizedString   `json:"title" yaml:"title"`
	Paragraphs []LocalizedString `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
}

// ProjectScaleSmall marks experiences rendered in the secondary group.
const ProjectScaleSmall = "small"

// Experience is one employment or engagement record.
type Experience struct {
	Title        LocalizedString   `json:"title" yaml:"title"`
	Company      string            `json:"company" yaml:"company"`
	Location     string            `json:"location" yaml:"location"`
	Period       LocalizedString   `json:"period" yaml:"period"`
	Description  []DescriptionItem `json:"description,omitempty" yaml:"description,omitempty"`
	Tags         []LocalizedString `json:"tags,omitempty" yaml:"tags,omitempty"`
	ProjectScale string            `json:"projectScale,omitempty" yaml:"projectScale,omitempty"`
	LogoURL      string            `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
}

// IsSmall reports whether the experience belongs to the small group.
func (e Experience) IsSmall() (small bool) {
	small = e.ProjectScale == ProjectScaleSmall
	return small
}

// DescriptionType distinguishes narrative text from highlighted achievements.
type DescriptionType string

const (
	// DescriptionText is a plain narrative line.
	DescriptionText DescriptionType = "text"
	// DescriptionAchievement is a line rendered with the achievement prefix.
	DescriptionAchievement DescriptionType = "achievement"
)

// DescriptionItem is one line of an experience description.
type DescriptionItem struct {
	Type DescriptionType `json:"type" yaml:"type"`
	Text LocalizedString `json:"text" yaml:"text"`
}

// Project is a portfolio project.
type Project struct {
	Title       LocalizedString `json:"title" yaml:"title"`
	Description LocalizedString `json:"description" yaml:"description"`
	Tags        []Tag           `json:"tags,omitempty" yaml:"tags,omitempty"`
	URL         string          `json:"url,omitempty" yaml:"url,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	ImageAlt    string          `json:"imageAlt,omitempty" yaml:"imageAlt,omitempty"`
}

// SkillCategory is one of a closed set of skill buckets.
type SkillCategory string

// Skill categories.
const (
	CategoryProgramming SkillCategory = "programming"
	CategoryFrontend    SkillCategory = "frontend"
	CategoryBackend     SkillCategory = "backend"
	CategoryDatabase    SkillCategory = "database"
	CategoryDevOps      SkillCategory = "devops"
	CategoryCloud       SkillCategory = "cloud"
	CategoryTools       SkillCategory = "tools"
	CategoryMethods     SkillCategory = "methods"
	CategoryLanguages   SkillCategory = "languages"
)

// Categories returns the closed category set.
func Categories() (categories []SkillCategory) {
	categories = []SkillCategory{
		CategoryProgramming,
		CategoryFrontend,
		CategoryBackend,
		CategoryDatabase,
		CategoryDevOps,
		CategoryCloud,
		CategoryTools,
		CategoryMethods,
		CategoryLanguages,
	}
	return categories
}

// Skill levels run from MinSkillLevel to MaxSkillLevel, the maximum being expert.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// Skill is a named skill with a 1-5 level, 5 being expert.
type Skill struct {
	Name     LocalizedString `json:"name" yaml:"name"`
	Category SkillCategory   `json:"category" yaml:"category"`
	Level    int             `json:"level" yaml:"level"`
}

// SkillsSection carries the section title and per-category labels.
type SkillsSection struct {
	Title      LocalizedString                   `json:"title" yaml:"title"`
	Categories map[SkillCategory]LocalizedString `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Contact holds the contact block. Website and social fields are full URLs.
type Contact struct {
	Title    LocalizedString `json:"title" yaml:"title"`
	Email    string          `json:"email" yaml:"email"`
	Phone    string          `json:"phone" yaml:"phone"`
	Website  string          `json:"website" yaml:"website"`
	Github   string          `json:"github" yaml:"github"`
	Linkedin string          `json:"linkedin" yaml:"linkedin"`
	Birthday string          `json:"birthday" yaml:"birthday"`
	Address  Address         `json:"address" yaml:"address"`
}

// Address is a postal address; street and city may be spelled per language.
type Address struct {
	Street LocalizedString `json:"street" yaml:"street"`
	City   LocalizedString `json:"city" yaml:"city"`
}

// Imprint is the legal notice.
type Imprint struct {
	Title   LocalizedString `json:"title" yaml:"title"`
	Content LocalizedString `json:"content" yaml:"content"`
}

// Footer is the site footer.
type Footer struct {
	Copyright LocalizedString `json:"copyright" yaml:"copyright"`
}

// SectionTitles overrides the built-in section headings.
type SectionTitles struct {
	About       LocalizedString `json:"about" yaml:"about"`
	Experience  LocalizedString `json:"experience" yaml:"experience"`
	Skills      LocalizedString `json:"skills" yaml:"skills"`
	Projects    LocalizedString `json:"projects" yaml:"projects"`
	Contact     LocalizedString `json:"contact" yaml:"contact"`
	SmallScale  LocalizedString `json:"smallScale" yaml:"smallScale"`
	Languages   LocalizedString `json:"languages" yaml:"languages"`
	Achievement LocalizedString `json:"achievement" yaml:"achievement"`
}
