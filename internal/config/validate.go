package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateTranscribe(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelforge/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set OPENROUTER_API_KEY env var or edit %s (create with 'reelforge config init')", defaultPath)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.APIKey == "" {
		return errors.New("tts.api_key is required. Set ELEVENLABS_API_KEY env var or edit the config file")
	}
	if c.TTS.Stability < 0 || c.TTS.Stability > 1 {
		return errors.New("tts.stability must be between 0 and 1")
	}
	if c.TTS.Similarity < 0 || c.TTS.Similarity > 1 {
		return errors.New("tts.similarity must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTranscribe() error {
	if c.Transcribe.APIKey == "" {
		return errors.New("transcribe.api_key is required. Set OPENAI_API_KEY env var or edit the config file")
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.APIKey == "" {
		// Gradient cards stand in for scene art when image search is unavailable.
		return nil
	}
	if c.Images.PerQuery <= 0 {
		return errors.New("images.per_query must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !c.Storage.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Storage.BaseURL) == "" {
		return errors.New("storage.base_url must be set when storage.enabled is true")
	}
	if strings.TrimSpace(c.Storage.ServiceKey) == "" {
		return errors.New("storage.service_key must be set when storage.enabled is true")
	}
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return errors.New("storage.bucket must be set when storage.enabled is true")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FPS <= 0 || c.Render.FPS > 120 {
		return errors.New("render.fps must be between 1 and 120")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}
	switch c.Render.Orientation {
	case "portrait", "landscape":
	default:
		return fmt.Errorf("render.orientation must be portrait or landscape, got %q", c.Render.Orientation)
	}
	if c.Render.CRF < 0 || c.Render.CRF > 51 {
		return errors.New("render.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"workflow.max_attempts":         c.Workflow.MaxAttempts,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
