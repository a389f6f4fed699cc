package plan

// maxMeals is the number of meal slots in a daily plan.
const maxMeals = len(Slots)

// Reconcile aligns the section and title lists by position and truncates
// both to their common usable length, capped at the number of meal slots.
// It returns ErrEmptyPlan when that length is zero. Excess sections or
// titles are discarded; missing ones are never fabricated. Callers that
// insist on a full three-meal day must check the returned length
// themselves.
func Reconcile(sections, titles []string) ([]Section, error) {
	n := maxMeals
	if len(sections) < n {
		n = len(sections)
	}
	if len(titles) < n {
		n = len(titles)
	}
	if n == 0 {
		return nil, ErrEmptyPlan
	}

	pairs := make([]Section, n)
	for i := 0; i < n; i++ {
		pairs[i] = Section{Text: sections[i], Title: titles[i]}
	}
	return pairs, nil
}
