package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"daily-meal-planner/internal/plan"
	"daily-meal-planner/internal/storage"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const sep = "--------------------------------------------------"

var testPlanText = strings.Join([]string{
	"**Oatmeal Bowl**\n1. Cook the oats\n2. Add berries",
	sep,
	"**Chicken Salad**\n1. Grill the chicken",
	sep,
	"**Veggie Stir Fry**\n1. Fry the veggies",
	"",
	"Oatmeal Bowl, Chicken Salad, Veggie Stir Fry",
}, "\n")

type stubTextGen struct{ plan string }

func (g *stubTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "spoken aloud") {
		return "A friendly spoken version.", nil
	}
	return g.plan, nil
}

type stubImageGen struct{}

func (g *stubImageGen) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return []byte("png-bytes"), nil
}

type stubSpeech struct{}

func (g *stubSpeech) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	return []byte("mp3-bytes"), nil
}

func newTestServer(t *testing.T, planText string) (*httptest.Server, *storage.AssetStore) {
	t.Helper()
	store, err := storage.NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create asset store: %v", err)
	}
	planner := plan.NewPlanner(&stubTextGen{plan: planText}, &stubImageGen{}, &stubSpeech{}, store, nil, zerolog.Nop())
	srv := httptest.NewServer(New(planner, store, zerolog.Nop()).RegisterRoutes())
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	return resp
}

func TestMealPlanEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv, store := newTestServer(t, testPlanText)

		resp := postJSON(t, srv.URL+"/meal_plan", `{"ingredients": "oats, chicken, broccoli"}`)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var result struct {
			RawPlan string `json:"raw_plan"`
			Meals   []struct {
				Title    string `json:"title"`
				Text     string `json:"text"`
				ImageURL string `json:"image_url"`
				AudioURL string `json:"audio_url"`
				HTMLURL  string `json:"html_url"`
			} `json:"meals"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if result.RawPlan == "" {
			t.Error("Expected raw_plan in response")
		}
		if len(result.Meals) != 3 {
			t.Fatalf("Expected 3 meals, got %d", len(result.Meals))
		}
		if result.Meals[0].Title != "Oatmeal Bowl" {
			t.Errorf("Expected first title 'Oatmeal Bowl', got '%s'", result.Meals[0].Title)
		}
		if !strings.HasSuffix(result.Meals[1].ImageURL, "/static/images/lunch.png") {
			t.Errorf("Expected lunch image URL, got '%s'", result.Meals[1].ImageURL)
		}
		if !strings.HasSuffix(result.Meals[2].HTMLURL, "/meal_plan_html/dinner") {
			t.Errorf("Expected dinner html URL, got '%s'", result.Meals[2].HTMLURL)
		}

		for _, slot := range plan.Slots {
			if !store.HasRecipe(string(slot)) {
				t.Errorf("Expected persisted recipe for %s", slot)
			}
		}
	})

	t.Run("MissingIngredients", func(t *testing.T) {
		srv, _ := newTestServer(t, testPlanText)

		resp := postJSON(t, srv.URL+"/meal_plan", `{"kcal": 1500}`)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("BlankPlan", func(t *testing.T) {
		srv, _ := newTestServer(t, "   ")

		resp := postJSON(t, srv.URL+"/meal_plan", `{"ingredients": "oats"}`)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", resp.StatusCode)
		}
	})

	t.Run("MalformedPlan", func(t *testing.T) {
		srv, _ := newTestServer(t, "just some prose\n,,,")

		resp := postJSON(t, srv.URL+"/meal_plan", `{"ingredients": "oats"}`)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", resp.StatusCode)
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode error body: %v", err)
		}
		if !strings.Contains(body.Message, "empty or badly formatted") {
			t.Errorf("Expected malformed-plan message, got '%s'", body.Message)
		}
	})
}

func TestMealPlanHTMLEndpoint(t *testing.T) {
	t.Run("RendersGeneratedRecipe", func(t *testing.T) {
		srv, _ := newTestServer(t, testPlanText)

		resp := postJSON(t, srv.URL+"/meal_plan", `{"ingredients": "oats"}`)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Plan generation failed with %d", resp.StatusCode)
		}

		pageResp, err := http.Get(srv.URL + "/meal_plan_html/breakfast")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer pageResp.Body.Close()
		if pageResp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", pageResp.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(pageResp.Body)
		if err != nil {
			t.Fatalf("Failed to parse HTML: %v", err)
		}

		if got := doc.Find("h1").Text(); got != "Breakfast" {
			t.Errorf("Expected h1 'Breakfast', got '%s'", got)
		}
		if src, _ := doc.Find("img").Attr("src"); src != "/static/images/breakfast.png" {
			t.Errorf("Unexpected image src: '%s'", src)
		}
		if src, _ := doc.Find("audio").Attr("src"); src != "/static/audio/breakfast.mp3" {
			t.Errorf("Unexpected audio src: '%s'", src)
		}
		// The markdown body should have been rendered to HTML.
		if got := doc.Find(".recipe strong").Text(); got != "Oatmeal Bowl" {
			t.Errorf("Expected rendered markdown bold title, got '%s'", got)
		}
	})

	t.Run("CaseInsensitiveName", func(t *testing.T) {
		srv, store := newTestServer(t, testPlanText)
		if err := store.SaveRecipeText("lunch", "1. Grill"); err != nil {
			t.Fatalf("Failed to seed recipe: %v", err)
		}

		resp, err := http.Get(srv.URL + "/meal_plan_html/LUNCH")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("UnknownMealName", func(t *testing.T) {
		srv, _ := newTestServer(t, testPlanText)

		resp, err := http.Get(srv.URL + "/meal_plan_html/brunch")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("RecipeNotYetGenerated", func(t *testing.T) {
		srv, _ := newTestServer(t, testPlanText)

		resp, err := http.Get(srv.URL + "/meal_plan_html/dinner")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestStaticAssets(t *testing.T) {
	srv, store := newTestServer(t, testPlanText)
	if err := store.SaveImage("breakfast", []byte("png-bytes")); err != nil {
		t.Fatalf("Failed to seed image: %v", err)
	}

	resp, err := http.Get(srv.URL + "/static/images/breakfast.png")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for static asset, got %d", resp.StatusCode)
	}
}
