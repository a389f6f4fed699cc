// Package plan turns the free-text output of a generative model into a
// structured set of meals, each with persisted image, audio, and recipe
// assets.
package plan

import (
	"errors"
	"strings"
)

// Slot is one of the fixed canonical meal identifiers. Slots are assigned
// strictly by position in the generated plan, never derived from a title,
// so repeated runs overwrite the same asset files.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots lists the canonical identifiers in position order.
var Slots = [3]Slot{SlotBreakfast, SlotLunch, SlotDinner}

// SlotFromName resolves a case-insensitive meal name to its canonical slot.
func SlotFromName(name string) (Slot, bool) {
	switch Slot(strings.ToLower(strings.TrimSpace(name))) {
	case SlotBreakfast:
		return SlotBreakfast, true
	case SlotLunch:
		return SlotLunch, true
	case SlotDinner:
		return SlotDinner, true
	}
	return "", false
}

// Failure kinds surfaced by the planning pipeline. Callers branch with
// errors.Is rather than string matching.
var (
	// ErrGenerationFailed means the text backend errored or returned a
	// blank plan.
	ErrGenerationFailed = errors.New("meal plan generation failed")

	// ErrEmptyPlan means no usable (section, title) pair could be
	// recovered from the generated text.
	ErrEmptyPlan = errors.New("meal plan was empty or badly formatted")

	// ErrAssetGeneration means an image, audio, or recipe artifact could
	// not be produced; the whole request is aborted rather than returning
	// a partial plan.
	ErrAssetGeneration = errors.New("meal asset generation failed")
)

// Request describes one planning run.
type Request struct {
	Ingredients      string `json:"ingredients"`
	Kcal             int    `json:"kcal"`
	ExactIngredients bool   `json:"exact_ingredients"`
	Extra            string `json:"extra,omitempty"`
}

// Meal is one fully assembled meal record. A Meal is only constructed
// after all three of its assets exist on disk.
type Meal struct {
	Slot     Slot   `json:"-"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
	AudioURL string `json:"audio_url"`
	HTMLURL  string `json:"html_url"`
}

// Result is the response for one successful planning run.
type Result struct {
	RawPlan string `json:"raw_plan"`
	Meals   []Meal `json:"meals"`
}

// Section pairs one meal's instructional text with its title.
type Section struct {
	Text  string
	Title string
}
