package scorer

// Rule categories.
const (
	CategoryTranslation  = "translation"
	CategoryConsistency  = "consistency"
	CategoryCompleteness = "completeness"
)

// Rule severities.
const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
	SeverityMinor    = "minor"
)

// Rule represents a scoring rule.
type Rule struct {
	Name        string
	Category    string
	Severity    string
	Description string
	Weight      int // Points deducted per violation
}

//nolint:gochecknoglobals // Scoring configuration constants
var ScoringRules = map[string]Rule{
	// Translation Rules
	"MISSING_TRANSLATION": {
		Name:        "MISSING_TRANSLATION",
		Category:    CategoryTranslation,
		Severity:    SeverityMajor,
		Description: "Text is set in one language only and renders empty in the other",
		Weight:      5,
	},
	"MISSING_SKILL_NAME": {
		Name:        "MISSING_SKILL_NAME",
		Category:    CategoryTranslation,
		Severity:    SeverityCritical,
		Description: "Displayed skill has no name in one language, leaving a blank entry",
		Weight:      10,
	},

	// Consistency Rules
	"CURRENT_MARKER_MISMATCH": {
		Name:        "CURRENT_MARKER_MISMATCH",
		Category:    CategoryConsistency,
		Severity:    SeverityCritical,
		Description: "Period reads as ongoing in one language but not the other, so experience order differs",
		Weight:      25,
	},
	"UNLABELED_CATEGORY": {
		Name:        "UNLABELED_CATEGORY",
		Category:    CategoryConsistency,
		Severity:    SeverityMinor,
		Description: "Skill category has no label in content and falls back to the built-in heading",
		Weight:      2,
	},

	// Completeness Rules
	"EMPTY_SKILL_CATEGORY": {
		Name:        "EMPTY_SKILL_CATEGORY",
		Category:    CategoryCompleteness,
		Severity:    SeverityMinor,
		Description: "No skill in the category reaches the display level, so the block is dropped",
		Weight:      5,
	},
	"SKILLS_TRUNCATED": {
		Name:        "SKILLS_TRUNCATED",
		Category:    CategoryCompleteness,
		Severity:    SeverityMinor,
		Description: "More skills qualify than one block shows; the later ones are cut",
		Weight:      3,
	},
	"PROJECT_TAGS_TRUNCATED": {
		Name:        "PROJECT_TAGS_TRUNCATED",
		Category:    CategoryCompleteness,
		Severity:    SeverityMinor,
		Description: "Project has more tags than are rendered",
		Weight:      1,
	},
	"MISSING_CONTACT": {
		Name:        "MISSING_CONTACT",
		Category:    CategoryCompleteness,
		Severity:    SeverityMajor,
		Description: "Neither email nor phone is set",
		Weight:      20,
	},
}

//nolint:gochecknoglobals // Scoring configuration constants
var CategoryWeights = map[string]float64{
	CategoryTranslation:  0.40,
	CategoryConsistency:  0.40,
	CategoryCompleteness: 0.20,
}
