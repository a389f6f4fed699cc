// Package storage persists generated meal assets as flat files under one
// static root and maps those files back to public URLs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	imagesDir  = "images"
	audioDir   = "audio"
	recipesDir = "recipes"

	// publicPrefix is the URL path prefix the serving layer mounts the
	// asset root under.
	publicPrefix = "static"
)

// AssetStore resolves and persists the per-meal asset files. Paths are
// pure functions of the canonical meal name, so every run overwrites the
// same files instead of accumulating new ones.
type AssetStore struct {
	root string
}

// NewAssetStore creates an AssetStore rooted at root and ensures the
// images, audio, and recipes directories exist.
func NewAssetStore(root string) (*AssetStore, error) {
	for _, dir := range []string{imagesDir, audioDir, recipesDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create asset directory %s: %w", dir, err)
		}
	}
	return &AssetStore{root: root}, nil
}

// Root returns the asset root directory.
func (s *AssetStore) Root() string {
	return s.root
}

// ImagePath returns the image file path for a canonical meal name.
func (s *AssetStore) ImagePath(name string) string {
	return filepath.Join(s.root, imagesDir, name+".png")
}

// AudioPath returns the audio file path for a canonical meal name.
func (s *AssetStore) AudioPath(name string) string {
	return filepath.Join(s.root, audioDir, name+".mp3")
}

// RecipePath returns the recipe text file path for a canonical meal name.
func (s *AssetStore) RecipePath(name string) string {
	return filepath.Join(s.root, recipesDir, name+".txt")
}

// SaveImage writes the image bytes for a meal, replacing any previous run.
func (s *AssetStore) SaveImage(name string, data []byte) error {
	if err := os.WriteFile(s.ImagePath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// SaveAudio writes the audio bytes for a meal, replacing any previous run.
func (s *AssetStore) SaveAudio(name string, data []byte) error {
	if err := os.WriteFile(s.AudioPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// SaveRecipeText writes the recipe body for a meal, replacing any
// previous run.
func (s *AssetStore) SaveRecipeText(name, text string) error {
	if err := os.WriteFile(s.RecipePath(name), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// LoadRecipeText reads the persisted recipe body for a meal.
func (s *AssetStore) LoadRecipeText(name string) (string, error) {
	data, err := os.ReadFile(s.RecipePath(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HasRecipe reports whether a recipe body has been generated for a meal
// in this deployment.
func (s *AssetStore) HasRecipe(name string) bool {
	_, err := os.Stat(s.RecipePath(name))
	return err == nil
}

// PublicURL converts a storage path under the asset root into a public
// URL rooted at baseURL. A path outside the root is a programming error,
// not a user-facing condition.
func (s *AssetStore) PublicURL(path, baseURL string) (string, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against asset root: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the asset root %s", path, s.root)
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + publicPrefix + "/" + filepath.ToSlash(rel), nil
}
