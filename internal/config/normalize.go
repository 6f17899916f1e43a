package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScriptGen()
	c.normalizeTTS()
	c.normalizeAssembly()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputsDir) == "" {
		c.Paths.OutputsDir = defaultOutputsDir
	}
	if c.Paths.OutputsDir, err = expandPath(c.Paths.OutputsDir); err != nil {
		return fmt.Errorf("paths.outputs_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SecretsDir) == "" {
		c.Paths.SecretsDir = defaultSecretsDir
	}
	if c.Paths.SecretsDir, err = expandPath(c.Paths.SecretsDir); err != nil {
		return fmt.Errorf("paths.secrets_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScriptGen() {
	c.ScriptGen.BaseURL = strings.TrimRight(strings.TrimSpace(c.ScriptGen.BaseURL), "/")
	if c.ScriptGen.BaseURL == "" {
		c.ScriptGen.BaseURL = defaultScriptGenBaseURL
	}
	if strings.TrimSpace(c.ScriptGen.Model) == "" {
		c.ScriptGen.Model = defaultScriptGenModel
	}
	if c.ScriptGen.MaxTokens <= 0 {
		c.ScriptGen.MaxTokens = defaultMaxTokens
	}
	if c.ScriptGen.TimeoutSeconds <= 0 {
		c.ScriptGen.TimeoutSeconds = defaultScriptGenTimeout
	}
	if c.ScriptGen.TargetLines <= 0 {
		c.ScriptGen.TargetLines = defaultTargetLines
	}
}

func (c *Config) normalizeTTS() {
	if c.TTS.RequestTimeout <= 0 {
		c.TTS.RequestTimeout = defaultTTSRequestTimeout
	}
	if c.TTS.MinClipBytes <= 0 {
		c.TTS.MinClipBytes = defaultMinClipBytes
	}
	if c.TTS.RequestIntervalMS < 0 {
		c.TTS.RequestIntervalMS = defaultRequestIntervalMS
	}
	c.TTS.HumeBaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.HumeBaseURL), "/")
	if c.TTS.HumeBaseURL == "" {
		c.TTS.HumeBaseURL = defaultHumeBaseURL
	}
	c.TTS.ElevenLabsBaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.ElevenLabsBaseURL), "/")
	if c.TTS.ElevenLabsBaseURL == "" {
		c.TTS.ElevenLabsBaseURL = defaultElevenLabsBaseURL
	}
}

func (c *Config) normalizeAssembly() {
	if c.Assembly.GapSeconds <= 0 {
		c.Assembly.GapSeconds = defaultGapSeconds
	}
	if c.Assembly.SampleRate <= 0 {
		c.Assembly.SampleRate = defaultSampleRate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
