package config

const (
	defaultStagingDir = "~/.local/share/reelforge/staging"
	defaultOutputDir  = "~/videos/reelforge"
	defaultLogDir     = "~/.local/share/reelforge/logs"

	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60

	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/reelforge/reelforge"
	defaultLLMTitle          = "Reelforge"
	defaultLLMTimeoutSeconds = 120

	defaultTTSBaseURL        = "https://api.elevenlabs.io/v1"
	defaultTTSVoiceID        = "onwK4e9ZLuTAKqWW03F9"
	defaultTTSModelID        = "eleven_multilingual_v2"
	defaultTTSStability      = 0.5
	defaultTTSSimilarity     = 0.75
	defaultTTSTimeoutSeconds = 180

	defaultTranscribeBaseURL        = "https://api.openai.com/v1/audio/transcriptions"
	defaultTranscribeModel          = "whisper-1"
	defaultTranscribeTimeoutSeconds = 300

	defaultImagesBaseURL        = "https://api.pexels.com/v1"
	defaultImagesPerQuery       = 3
	defaultImagesTimeoutSeconds = 60

	defaultStorageBucket         = "videos"
	defaultStorageTimeoutSeconds = 600

	defaultRenderFPS         = 30
	defaultRenderWidth       = 1080
	defaultRenderHeight      = 1920
	defaultRenderOrientation = "portrait"
	defaultRenderCRF         = 23
	defaultRenderPreset      = "medium"

	defaultWorkflowQueuePollInterval  = 5
	defaultWorkflowErrorRetryInterval = 30
	defaultWorkflowMaxAttempts        = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			VoiceID:        defaultTTSVoiceID,
			ModelID:        defaultTTSModelID,
			Stability:      defaultTTSStability,
			Similarity:     defaultTTSSimilarity,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Transcribe: Transcribe{
			BaseURL:        defaultTranscribeBaseURL,
			Model:          defaultTranscribeModel,
			TimeoutSeconds: defaultTranscribeTimeoutSeconds,
		},
		Images: Images{
			BaseURL:        defaultImagesBaseURL,
			PerQuery:       defaultImagesPerQuery,
			TimeoutSeconds: defaultImagesTimeoutSeconds,
		},
		Storage: Storage{
			Enabled:        false,
			Bucket:         defaultStorageBucket,
			TimeoutSeconds: defaultStorageTimeoutSeconds,
		},
		Render: Render{
			FPS:         defaultRenderFPS,
			Width:       defaultRenderWidth,
			Height:      defaultRenderHeight,
			Orientation: defaultRenderOrientation,
			CRF:         defaultRenderCRF,
			Preset:      defaultRenderPreset,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultWorkflowQueuePollInterval,
			ErrorRetryInterval: defaultWorkflowErrorRetryInterval,
			MaxAttempts:        defaultWorkflowMaxAttempts,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
