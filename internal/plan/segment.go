package plan

import "strings"

const minSeparatorLen = 10

// isSeparator reports whether a trimmed line delimits two meal sections.
// The model is asked for 50 dashes, but any dash-only line of at least 10
// characters counts; exact-count matching is too brittle for model output.
func isSeparator(trimmed string) bool {
	if len(trimmed) < minSeparatorLen {
		return false
	}
	return strings.Count(trimmed, "-") == len(trimmed)
}

// SplitSections splits a raw plan into individual meal section texts.
// Lines between separators accumulate into blocks; blocks with no
// non-blank content are dropped. Each returned block is the trimmed join
// of its lines, in input order.
func SplitSections(raw string) []string {
	var sections []string
	var current []string

	flush := func() {
		blank := true
		for _, l := range current {
			if strings.TrimSpace(l) != "" {
				blank = false
				break
			}
		}
		if !blank {
			sections = append(sections, strings.TrimSpace(strings.Join(current, "\n")))
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if isSeparator(strings.TrimSpace(line)) {
			flush()
		} else {
			current = append(current, line)
		}
	}
	flush()

	return sections
}
