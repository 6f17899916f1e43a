package config

const (
	defaultDataDir    = "~/.local/share/showrunner/data"
	defaultOutputsDir = "~/.local/share/showrunner/outputs"
	defaultSecretsDir = "~/.config/showrunner/secrets"
	defaultLogDir     = "~/.local/share/showrunner/logs"

	defaultScriptGenBaseURL = "https://api.anthropic.com"
	defaultScriptGenModel   = "claude-3-5-sonnet-20241022"
	defaultMaxTokens        = 8192
	defaultScriptGenTimeout = 120
	defaultTargetLines      = 50

	defaultTTSRequestTimeout = 60
	defaultMinClipBytes      = 1000
	defaultRequestIntervalMS = 500
	defaultHumeBaseURL       = "https://api.hume.ai"
	defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

	defaultGapSeconds = 0.3
	defaultSampleRate = 44100

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			OutputsDir: defaultOutputsDir,
			SecretsDir: defaultSecretsDir,
			LogDir:     defaultLogDir,
		},
		ScriptGen: ScriptGen{
			BaseURL:        defaultScriptGenBaseURL,
			Model:          defaultScriptGenModel,
			MaxTokens:      defaultMaxTokens,
			TimeoutSeconds: defaultScriptGenTimeout,
			TargetLines:    defaultTargetLines,
		},
		TTS: TTS{
			RequestTimeout:    defaultTTSRequestTimeout,
			MinClipBytes:      defaultMinClipBytes,
			RequestIntervalMS: defaultRequestIntervalMS,
			HumeBaseURL:       defaultHumeBaseURL,
			ElevenLabsBaseURL: defaultElevenLabsBaseURL,
		},
		Assembly: Assembly{
			GapSeconds: defaultGapSeconds,
			SampleRate: defaultSampleRate,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Production:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
