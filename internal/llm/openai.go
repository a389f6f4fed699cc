package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"daily-meal-planner/internal/config"
)

const (
	openAIChatModel   = "gpt-3.5-turbo"
	openAIImageModel  = "dall-e-3"
	openAISpeechModel = "tts-1"
	openAISpeechVoice = "onyx"

	chatSystemRole = "You are a skilled cook with the expertise of a chef."
)

// OpenAIClient talks to the OpenAI chat, image, and speech endpoints.
// It implements TextGenerator, ImageGenerator, and SpeechSynthesizer.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  cfg.OpenAIAPIKey,
		baseURL: cfg.OpenAIBaseURL,
		httpClient: &http.Client{
			// Image generation routinely takes far longer than chat completions.
			Timeout: 2 * time.Minute,
		},
	}
}

// GenerateText sends a prompt to the chat completions endpoint and returns
// the generated text.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": openAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": chatSystemRole},
			{"role": "user", "content": prompt},
		},
		"temperature": 1.0,
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := c.postJSON(ctx, "/chat/completions", reqBody, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateImage asks DALL-E for an image, downloads it from the returned
// URL, and hands back the raw PNG bytes.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	reqBody := map[string]interface{}{
		"model":   openAIImageModel,
		"prompt":  prompt,
		"style":   "natural",
		"size":    "1024x1024",
		"quality": "standard",
	}

	var imgResp struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}

	if err := c.postJSON(ctx, "/images/generations", reqBody, &imgResp); err != nil {
		return nil, err
	}

	if len(imgResp.Data) == 0 || imgResp.Data[0].URL == "" {
		return nil, fmt.Errorf("no image generated")
	}

	return c.downloadImage(ctx, imgResp.Data[0].URL)
}

// SynthesizeSpeech turns text into MP3 audio via the speech endpoint.
func (c *OpenAIClient) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	reqBody := map[string]interface{}{
		"model": openAISpeechModel,
		"voice": openAISpeechVoice,
		"input": text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/audio/speech", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	return audio, nil
}

func (c *OpenAIClient) postJSON(ctx context.Context, path string, reqBody interface{}, out interface{}) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *OpenAIClient) downloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading image from %s: status=%d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}
