package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language names a filetype shown in the status line.
type Language struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

func DefaultLanguages() Languages {
	return Languages{Languages: []Language{
		{Name: "c", FileTypes: []string{"c", "h"}},
		{Name: "go", FileTypes: []string{"go", "go.mod", "go.sum"}},
		{Name: "markdown", FileTypes: []string{"md", "markdown"}},
		{Name: "toml", FileTypes: []string{"toml"}},
		{Name: "json", FileTypes: []string{"json"}},
		{Name: "yaml", FileTypes: []string{"yaml", "yml"}},
		{Name: "python", FileTypes: []string{"py"}},
		{Name: "shell", FileTypes: []string{"sh", "bash"}},
		{Name: "make", FileTypes: []string{"Makefile"}},
	}}
}

// LoadLanguages reads languages.toml. User entries are matched before the
// built-in ones.
func LoadLanguages() (Languages, error) {
	defaults := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return defaults, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return defaults, err
	}
	cfg.Languages = append(cfg.Languages, defaults.Languages...)
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
