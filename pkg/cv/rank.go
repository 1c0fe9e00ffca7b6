package cv

import (
	"slices"
	"strings"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

// Ranked holds experiences split into the two display groups.
type Ranked struct {
	Major []content.Experience
	Small []content.Experience
}

// IsCurrent reports whether the localized period ends with the language's
// "present" word. This is a literal suffix match: "since 2020" or
// "2020 - today" count as finished.
func IsCurrent(e content.Experience, lang content.Language) (current bool) {
	sentinel := presentSentinels[lang]
	if sentinel == "" {
		return current
	}
	current = strings.HasSuffix(e.Period.In(lang), sentinel)
	return current
}

// Rank moves current entries ahead of finished ones, keeping the input order
// within each class, then partitions on the project scale. The input slice is
// not modified.
func Rank(experiences []content.Experience, lang content.Language) (ranked Ranked) {
	sorted := slices.Clone(experiences)
	slices.SortStableFunc(sorted, func(a, b content.Experience) int {
		ca, cb := IsCurrent(a, lang), IsCurrent(b, lang)
		switch {
		case ca == cb:
			return 0
		case ca:
			return -1
		default:
			return 1
		}
	})

	ranked.Major = make([]content.Experience, 0, len(sorted))
	ranked.Small = make([]content.Experience, 0)
	for _, e := range sorted {
		if e.IsSmall() {
			ranked.Small = append(ranked.Small, e)
			continue
		}
		ranked.Major = append(ranked.Major, e)
	}

	return ranked
}
