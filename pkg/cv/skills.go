package cv

import (
	"github.com/nikogura/portfolio-cv/pkg/content"
)

const (
	// DisplayMinLevel is the lowest level shown in a compact skill list.
	DisplayMinLevel = 4
	// DisplayMaxSkills caps each displayed category.
	DisplayMaxSkills = 10
)

// SkillGroup is the skills of one category in input order.
type SkillGroup struct {
	Category content.SkillCategory
	Skills   []content.Skill
}

// GroupSkills buckets skills by category. Groups appear in order of first
// occurrence and skills keep their relative order; nothing is sorted by level.
func GroupSkills(skills []content.Skill) (groups []SkillGroup) {
	index := make(map[content.SkillCategory]int)
	for _, skill := range skills {
		i, ok := index[skill.Category]
		if !ok {
			i = len(groups)
			index[skill.Category] = i
			groups = append(groups, SkillGroup{Category: skill.Category})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}
	return groups
}

// SelectForDisplay keeps skills at DisplayMinLevel or above and truncates to
// the first DisplayMaxSkills of them. Truncation is positional, so list order
// decides which skills survive.
func SelectForDisplay(skills []content.Skill) (selected []content.Skill) {
	selected = make([]content.Skill, 0, DisplayMaxSkills)
	for _, skill := range skills {
		if skill.Level < DisplayMinLevel {
			continue
		}
		selected = append(selected, skill)
		if len(selected) == DisplayMaxSkills {
			break
		}
	}
	return selected
}
