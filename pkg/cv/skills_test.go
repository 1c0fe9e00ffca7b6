package cv

import (
	"fmt"
	"testing"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

func skill(name string, category content.SkillCategory, level int) (s content.Skill) {
	s = content.Skill{Name: content.L(name, name), Category: category, Level: level}
	return s
}

func TestGroupSkillsKeepsFirstOccurrenceOrder(t *testing.T) {
	skills := []content.Skill{
		skill("Go", content.CategoryProgramming, 5),
		skill("Docker", content.CategoryDevOps, 4),
		skill("Rust", content.CategoryProgramming, 3),
		skill("English", content.CategoryLanguages, 5),
		skill("Helm", content.CategoryDevOps, 5),
	}

	groups := GroupSkills(skills)

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}

	wantCategories := []content.SkillCategory{content.CategoryProgramming, content.CategoryDevOps, content.CategoryLanguages}
	for i, want := range wantCategories {
		if groups[i].Category != want {
			t.Errorf("Group %d = %s, want %s", i, groups[i].Category, want)
		}
	}

	if groups[0].Skills[0].Name.EN != "Go" || groups[0].Skills[1].Name.EN != "Rust" {
		t.Errorf("Programming group out of order: %v", groups[0].Skills)
	}
	if groups[1].Skills[0].Name.EN != "Docker" || groups[1].Skills[1].Name.EN != "Helm" {
		t.Errorf("DevOps group out of order: %v", groups[1].Skills)
	}
}

func TestGroupSkillsEmpty(t *testing.T) {
	if groups := GroupSkills(nil); len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestSelectForDisplayFilterAndCap(t *testing.T) {
	// Twelve skills, the odd positions qualify.
	var skills []content.Skill
	for i := 0; i < 12; i++ {
		level := 2
		if i%2 == 1 {
			level = 4 + i%3%2
		}
		skills = append(skills, skill(fmt.Sprintf("s%d", i), content.CategoryTools, level))
	}

	selected := SelectForDisplay(skills)

	if len(selected) > DisplayMaxSkills {
		t.Fatalf("Expected at most %d skills, got %d", DisplayMaxSkills, len(selected))
	}

	want := []string{"s1", "s3", "s5", "s7", "s9", "s11"}
	if len(selected) != len(want) {
		t.Fatalf("Expected %d skills, got %d", len(want), len(selected))
	}
	for i, s := range selected {
		if s.Level < DisplayMinLevel {
			t.Errorf("Selected skill %s has level %d", s.Name.EN, s.Level)
		}
		if s.Name.EN != want[i] {
			t.Errorf("Position %d = %s, want %s", i, s.Name.EN, want[i])
		}
	}
}

func TestSelectForDisplayTruncatesPositionally(t *testing.T) {
	var skills []content.Skill
	for i := 0; i < 14; i++ {
		// Later entries have higher levels but must not displace earlier ones.
		level := 4
		if i >= 10 {
			level = 5
		}
		skills = append(skills, skill(fmt.Sprintf("s%d", i), content.CategoryTools, level))
	}

	selected := SelectForDisplay(skills)

	if len(selected) != DisplayMaxSkills {
		t.Fatalf("Expected %d skills, got %d", DisplayMaxSkills, len(selected))
	}
	if selected[9].Name.EN != "s9" {
		t.Errorf("Expected last kept skill s9, got %s", selected[9].Name.EN)
	}
}
