package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScriptGen(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateAssembly(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.OutputsDir == "" {
		return errors.New("paths.outputs_dir must be set")
	}
	if c.Paths.DataDir == c.Paths.OutputsDir {
		return errors.New("paths.data_dir and paths.outputs_dir must differ")
	}
	return nil
}

func (c *Config) validateScriptGen() error {
	if c.ScriptGen.MaxTokens > 200000 {
		return errors.New("scriptgen.max_tokens is unreasonably large")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.RequestTimeout > 600 {
		return errors.New("tts.request_timeout must be 600 seconds or less")
	}
	return nil
}

func (c *Config) validateAssembly() error {
	if c.Assembly.GapSeconds > 10 {
		return fmt.Errorf("assembly.gap_seconds %.2f is too long for inter-line spacing", c.Assembly.GapSeconds)
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
