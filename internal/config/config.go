package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	YtDlp       YtDlpConfig       `yaml:"ytdlp"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type PathsConfig struct {
	Input   string `yaml:"input"`
	Temp    string `yaml:"temp"`
	Outputs string `yaml:"outputs"`
	Prompts string `yaml:"prompts"`
}

type YtDlpConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	AudioFormat string `yaml:"audio_format"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
	BeamSize   int    `yaml:"beam_size"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Outputs == "" {
		return fmt.Errorf("paths.outputs is required")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Prompts == "" {
		c.Paths.Prompts = "prompts"
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.AudioFormat == "" {
		c.YtDlp.AudioFormat = "mp3"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.BeamSize == 0 {
		c.Whisper.BeamSize = 5
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

// GeminiAPIKeys reads the generation-service credentials from the process
// environment. GEMINI_API_KEYS holds a comma-separated list, GEMINI_API_KEY
// a single key. Returns nil when neither is set.
func GeminiAPIKeys() []string {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		return keys
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		return []string{v}
	}
	return nil
}
