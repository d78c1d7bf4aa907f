package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Keymap holds user bindings per mode, key name -> action name. They are
// consulted before the built-in bindings.
type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Insert map[string]string `toml:"insert"`
	Visual map[string]string `toml:"visual"`
}

type EditorOptions struct {
	TabStop        int    `toml:"tab-stop"`
	ScrollOff      int    `toml:"scroll-off"`
	LineNumbers    string `toml:"line-numbers"`
	MessageTimeout int    `toml:"message-timeout"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	LineNumberForeground string `toml:"line-number-foreground"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabStop:        4,
			ScrollOff:      8,
			LineNumbers:    "relative",
			MessageTimeout: 5,
		},
		Theme: Theme{
			Foreground:           "default",
			Background:           "default",
			StatuslineForeground: "black",
			StatuslineBackground: "white",
			LineNumberForeground: "yellow",
			SelectionForeground:  "black",
			SelectionBackground:  "silver",
		},
		Keymap: Keymap{
			Normal: map[string]string{},
			Insert: map[string]string{},
			Visual: map[string]string{},
		},
	}
}

// MessageTimeoutDuration is how long a status message stays on screen.
func (o EditorOptions) MessageTimeoutDuration() time.Duration {
	return time.Duration(o.MessageTimeout) * time.Second
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabStop > 0 {
		cfg.Editor.TabStop = userCfg.Editor.TabStop
	}
	if userCfg.Editor.ScrollOff > 0 {
		cfg.Editor.ScrollOff = userCfg.Editor.ScrollOff
	}
	if userCfg.Editor.LineNumbers != "" {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Editor.MessageTimeout > 0 {
		cfg.Editor.MessageTimeout = userCfg.Editor.MessageTimeout
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	mergeKeys(cfg.Keymap.Normal, userCfg.Keymap.Normal)
	mergeKeys(cfg.Keymap.Insert, userCfg.Keymap.Insert)
	mergeKeys(cfg.Keymap.Visual, userCfg.Keymap.Visual)

	return cfg, nil
}

func mergeKeys(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
