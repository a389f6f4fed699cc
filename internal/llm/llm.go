package llm

import "context"

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator is an interface for generating an image from a prompt.
// Implementations return the raw encoded image bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// SpeechSynthesizer is an interface for turning text into spoken audio.
// Implementations return the raw encoded audio bytes.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
