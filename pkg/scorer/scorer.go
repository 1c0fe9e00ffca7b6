// Package scorer rates how ready site content is for bilingual CV output.
// It flags content that renders, but renders badly: missing translations,
// periods that rank differently per language, and entries the CV drops.
package scorer

import (
	"fmt"
	"sort"

	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/cv"
)

// Violation is one rule hit at a content path such as "experiences.2.period".
type Violation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Location string `json:"location"`
	Detail   string `json:"detail,omitempty"`
}

// Scores summarizes violations per category, each 0-100.
type Scores struct {
	Translation  int         `json:"translation"`
	Consistency  int         `json:"consistency"`
	Completeness int         `json:"completeness"`
	Overall      int         `json:"overall"`
	Violations   []Violation `json:"violations"`
}

// Scorer calculates scores from content.
type Scorer struct{}

// NewScorer creates a new scorer instance.
func NewScorer() (scorer *Scorer) {
	scorer = &Scorer{}
	return scorer
}

// Check lists every rule violation in c, in content order.
func (s *Scorer) Check(c content.SiteContent) (violations []Violation) {
	add := func(rule, location, detail string) {
		violations = append(violations, Violation{
			Rule:     rule,
			Severity: ScoringRules[rule].Severity,
			Location: location,
			Detail:   detail,
		})
	}

	localized := func(location string, l content.LocalizedString) {
		switch {
		case l.EN != "" && l.DE == "":
			add("MISSING_TRANSLATION", location+".de", "en: "+l.EN)
		case l.DE != "" && l.EN == "":
			add("MISSING_TRANSLATION", location+".en", "de: "+l.DE)
		}
	}

	localized("hero.title", c.Hero.Title)
	localized("hero.description", c.Hero.Description)
	for i, p := range c.About.Paragraphs {
		localized(fmt.Sprintf("about.paragraphs.%d", i), p)
	}

	for i, e := range c.Experiences {
		base := fmt.Sprintf("experiences.%d", i)
		localized(base+".title", e.Title)
		localized(base+".period", e.Period)
		for j, d := range e.Description {
			localized(fmt.Sprintf("%s.description.%d.text", base, j), d.Text)
		}
		for j, tag := range e.Tags {
			localized(fmt.Sprintf("%s.tags.%d", base, j), tag)
		}

		en, de := cv.IsCurrent(e, content.English), cv.IsCurrent(e, content.German)
		if en != de {
			add("CURRENT_MARKER_MISMATCH", base+".period", fmt.Sprintf("en %q, de %q", e.Period.EN, e.Period.DE))
		}
	}

	for i, p := range c.Projects {
		base := fmt.Sprintf("projects.%d", i)
		localized(base+".title", p.Title)
		localized(base+".description", p.Description)
		if len(p.Tags) > cv.MaxProjectTags {
			add("PROJECT_TAGS_TRUNCATED", base+".tags", fmt.Sprintf("%d of %d shown", cv.MaxProjectTags, len(p.Tags)))
		}
	}

	s.checkSkills(c, add)

	if c.Contact.Email == "" && c.Contact.Phone == "" {
		add("MISSING_CONTACT", "contact", "")
	}

	return violations
}

func (s *Scorer) checkSkills(c content.SiteContent, add func(rule, location, detail string)) {
	positions := make(map[content.SkillCategory][]int)
	for i, skill := range c.Skills {
		positions[skill.Category] = append(positions[skill.Category], i)
	}

	for _, group := range cv.GroupSkills(c.Skills) {
		category := string(group.Category)

		if group.Category == content.CategoryLanguages {
			continue
		}

		if _, ok := c.SkillsSection.Categories[group.Category]; !ok {
			add("UNLABELED_CATEGORY", "skillsSection.categories."+category, "")
		}

		eligible := 0
		for j, skill := range group.Skills {
			if skill.Level < cv.DisplayMinLevel {
				continue
			}
			eligible++
			if eligible > cv.DisplayMaxSkills {
				continue
			}
			if skill.Name.EN == "" || skill.Name.DE == "" {
				add("MISSING_SKILL_NAME", fmt.Sprintf("skills.%d.name", positions[group.Category][j]), "")
			}
		}

		switch {
		case eligible == 0:
			add("EMPTY_SKILL_CATEGORY", "skills", category)
		case eligible > cv.DisplayMaxSkills:
			add("SKILLS_TRUNCATED", "skills", fmt.Sprintf("%s: %d of %d shown", category, cv.DisplayMaxSkills, eligible))
		}
	}
}

// CalculateScores computes category and overall scores from violations.
func (s *Scorer) CalculateScores(violations []Violation) (scores Scores) {
	byCategory := map[string]int{
		CategoryTranslation:  100,
		CategoryConsistency:  100,
		CategoryCompleteness: 100,
	}

	for _, v := range violations {
		rule, exists := ScoringRules[v.Rule]
		if !exists {
			continue
		}
		byCategory[rule.Category] -= rule.Weight
	}

	overall := 0.0
	for category, score := range byCategory {
		if score < 0 {
			score = 0
			byCategory[category] = score
		}
		overall += float64(score) * CategoryWeights[category]
	}

	scores = Scores{
		Translation:  byCategory[CategoryTranslation],
		Consistency:  byCategory[CategoryConsistency],
		Completeness: byCategory[CategoryCompleteness],
		Overall:      int(overall + 0.5),
		Violations:   violations,
	}
	if scores.Violations == nil {
		scores.Violations = []Violation{}
	}

	return scores
}

// Score is Check followed by CalculateScores.
func (s *Scorer) Score(c content.SiteContent) (scores Scores) {
	scores = s.CalculateScores(s.Check(c))
	return scores
}

// ExtractLessons turns scores into short advice, most severe first.
func (s *Scorer) ExtractLessons(scores Scores) (lessons []string) {
	lessons = []string{}

	counts := make(map[string]int)
	for _, v := range scores.Violations {
		counts[v.Rule]++
	}

	rules := make([]string, 0, len(counts))
	for rule := range counts {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		wi, wj := ScoringRules[rules[i]].Weight, ScoringRules[rules[j]].Weight
		if wi != wj {
			return wi > wj
		}
		return rules[i] < rules[j]
	})

	for _, rule := range rules {
		lessons = append(lessons, fmt.Sprintf("%s (%dx): %s", rule, counts[rule], ScoringRules[rule].Description))
	}

	if scores.Overall < 70 {
		lessons = append(lessons, "Overall readiness below acceptable threshold - the EN and DE documents will differ noticeably")
	}

	return lessons
}
