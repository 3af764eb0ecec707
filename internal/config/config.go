package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the dice battle renderer
type Config struct {
	Paths      PathsConfig
	Fetch      FetchConfig
	Fonts      FontConfig
	Theme      ThemeConfig
	ThemeFile  string        `env:"DICEBATTLE_THEME_FILE"`
	RunTimeout time.Duration `env:"DICEBATTLE_RUN_TIMEOUT" envDefault:"30s"`
	LogLevel   string        `env:"DICEBATTLE_LOG_LEVEL" envDefault:"info"`
}

// PathsConfig holds the asset and scratch directories
type PathsConfig struct {
	AssetsDir  string `env:"DICEBATTLE_ASSETS_DIR" envDefault:"dice_assets"`
	ScratchDir string `env:"DICEBATTLE_SCRATCH_DIR" envDefault:"temp_dice_images"`
}

// FetchConfig holds avatar download settings
type FetchConfig struct {
	Timeout  time.Duration `env:"DICEBATTLE_FETCH_TIMEOUT" envDefault:"10s"`
	Parallel bool          `env:"DICEBATTLE_PARALLEL_FETCH" envDefault:"true"`
}

// FontConfig holds font lookup settings
type FontConfig struct {
	Path string   `env:"DICEBATTLE_FONT_PATH" envDefault:"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"`
	Dirs []string `env:"DICEBATTLE_FONT_DIRS" envSeparator:":" envDefault:"/usr/share/fonts/truetype/dejavu:/usr/share/fonts/TTF:/usr/share/fonts:/Library/Fonts"`
}

// ThemeConfig holds optional overrides for text and colours.
// Empty fields keep the built-in look. Colours are hex strings ("#8b4513").
type ThemeConfig struct {
	Title       string `yaml:"title"`
	BaseColor   string `yaml:"base_color"`
	TextColor   string `yaml:"text_color"`
	AccentColor string `yaml:"accent_color"`
	VSColor     string `yaml:"vs_color"`
	GlowColor   string `yaml:"glow_color"`
}

// Load loads configuration from the environment and the optional theme file
func Load() (*Config, error) {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ThemeFile != "" {
		theme, err := LoadTheme(cfg.ThemeFile)
		if err != nil {
			return nil, err
		}
		cfg.Theme = *theme
	}

	if cfg.Fetch.Timeout <= 0 {
		return nil, fmt.Errorf("fetch timeout must be positive, got %s", cfg.Fetch.Timeout)
	}
	if cfg.RunTimeout <= 0 {
		return nil, fmt.Errorf("run timeout must be positive, got %s", cfg.RunTimeout)
	}

	return cfg, nil
}

// LoadTheme reads a YAML theme file
func LoadTheme(path string) (*ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var theme ThemeConfig
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return &theme, nil
}
