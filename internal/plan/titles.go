package plan

import "strings"

// ExtractTitles recovers the meal titles from the last non-empty line of
// the raw plan. The prompt instructs the model to end its answer with a
// single comma-separated title line; that contract is trusted, not
// verified beyond "is the last line".
func ExtractTitles(raw string) []string {
	lines := strings.Split(raw, "\n")

	var titleLine string
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			titleLine = trimmed
			break
		}
	}
	if titleLine == "" {
		return nil
	}

	var titles []string
	for _, fragment := range strings.Split(titleLine, ",") {
		title := strings.Trim(fragment, " '")
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
