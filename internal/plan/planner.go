package plan

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"daily-meal-planner/internal/llm"
	"daily-meal-planner/internal/storage"

	"github.com/rs/zerolog"
)

//go:embed plan_prompt.md
var planPrompt string

//go:embed spoken_prompt.md
var spokenPrompt string

// imageFraming is appended to every image prompt so all meal photos share
// the same staging.
const imageFraming = "hd quality, Top-down view of the entire dish, fully visible, centered in the image, on a plain white background, no cropping"

// StageRecorder receives timing for each generation stage. Recording is
// best-effort: failures are logged by the Planner and never abort a run.
type StageRecorder interface {
	RecordStage(stage string, latency time.Duration, ok bool) error
}

// Planner drives one planning run end to end: generate the plan text,
// recover the meal sections and titles, and produce the image, audio, and
// recipe assets for each meal in slot order.
type Planner struct {
	textGen  llm.TextGenerator
	imageGen llm.ImageGenerator
	speech   llm.SpeechSynthesizer
	store    *storage.AssetStore
	recorder StageRecorder
	log      zerolog.Logger
}

// NewPlanner creates a new Planner instance. recorder may be nil.
func NewPlanner(
	textGen llm.TextGenerator,
	imageGen llm.ImageGenerator,
	speech llm.SpeechSynthesizer,
	store *storage.AssetStore,
	recorder StageRecorder,
	logger zerolog.Logger,
) *Planner {
	return &Planner{
		textGen:  textGen,
		imageGen: imageGen,
		speech:   speech,
		store:    store,
		recorder: recorder,
		log:      logger,
	}
}

// GeneratePlan runs the full pipeline for one request. Meal URLs are
// resolved against baseURL, the public base of the current request. The
// run is all-or-nothing: any asset failure aborts it, and no partial
// result is returned.
func (p *Planner) GeneratePlan(ctx context.Context, req Request, baseURL string) (*Result, error) {
	prompt, err := buildPlanPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan prompt: %w", err)
	}

	start := time.Now()
	rawPlan, err := p.textGen.GenerateText(ctx, prompt)
	p.record("plan_text", time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(rawPlan) == "" {
		return nil, ErrGenerationFailed
	}

	sections := SplitSections(rawPlan)
	titles := ExtractTitles(rawPlan)
	pairs, err := Reconcile(sections, titles)
	if err != nil {
		p.log.Warn().
			Int("sections", len(sections)).
			Int("titles", len(titles)).
			Msg("no usable meals recovered from plan text")
		return nil, err
	}
	if len(pairs) < maxMeals {
		p.log.Warn().
			Int("sections", len(sections)).
			Int("titles", len(titles)).
			Int("meals", len(pairs)).
			Msg("plan text yielded fewer than three meals")
	}

	meals := make([]Meal, 0, len(pairs))
	for i, pair := range pairs {
		meal, err := p.buildMeal(ctx, Slots[i], pair, baseURL)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *meal)
	}

	return &Result{RawPlan: rawPlan, Meals: meals}, nil
}

// buildMeal persists the recipe text, generates and persists the image
// and audio assets, and assembles the meal record for one slot.
func (p *Planner) buildMeal(ctx context.Context, slot Slot, sec Section, baseURL string) (*Meal, error) {
	name := string(slot)

	if err := p.store.SaveRecipeText(name, sec.Text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetGeneration, err)
	}

	start := time.Now()
	image, err := p.imageGen.GenerateImage(ctx, fmt.Sprintf("%s, %s", sec.Title, imageFraming))
	p.record("meal_image", time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: image for %s: %v", ErrAssetGeneration, slot, err)
	}
	if err := p.store.SaveImage(name, image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetGeneration, err)
	}

	audio, err := p.synthesizeRecipeAudio(ctx, sec.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: audio for %s: %v", ErrAssetGeneration, slot, err)
	}
	if err := p.store.SaveAudio(name, audio); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetGeneration, err)
	}

	imageURL, err := p.store.PublicURL(p.store.ImagePath(name), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image URL: %w", err)
	}
	audioURL, err := p.store.PublicURL(p.store.AudioPath(name), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audio URL: %w", err)
	}

	return &Meal{
		Slot:     slot,
		Title:    sec.Title,
		Text:     sec.Text,
		ImageURL: imageURL,
		AudioURL: audioURL,
		HTMLURL:  strings.TrimSuffix(baseURL, "/") + "/meal_plan_html/" + name,
	}, nil
}

// synthesizeRecipeAudio first asks the text backend for a rewrite that
// reads well aloud, then synthesizes that rewrite. A blank rewrite falls
// back to the original recipe text.
func (p *Planner) synthesizeRecipeAudio(ctx context.Context, recipe string) ([]byte, error) {
	prompt, err := buildSpokenPrompt(recipe)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	spoken, err := p.textGen.GenerateText(ctx, prompt)
	p.record("spoken_rewrite", time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("spoken rewrite: %w", err)
	}
	if strings.TrimSpace(spoken) == "" {
		spoken = recipe
	}

	start = time.Now()
	audio, err := p.speech.SynthesizeSpeech(ctx, spoken)
	p.record("speech", time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	return audio, nil
}

func (p *Planner) record(stage string, latency time.Duration, ok bool) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordStage(stage, latency, ok); err != nil {
		p.log.Warn().Err(err).Str("stage", stage).Msg("failed to record stage metric")
	}
}

func buildPlanPrompt(req Request) (string, error) {
	tmpl, err := template.New("plan").Parse(planPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildSpokenPrompt(recipe string) (string, error) {
	tmpl, err := template.New("spoken").Parse(spokenPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Recipe string }{Recipe: recipe}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
