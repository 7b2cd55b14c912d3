package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "PLOTER"

// Env holds the deployment overrides read from PLOTER_* variables.
type Env struct {
	Home        string `envconfig:"HOME"`
	DB          string `envconfig:"DB"`
	Templates   string `envconfig:"TEMPLATES"`
	LogFile     string `envconfig:"LOG_FILE"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	PDFFont     string `envconfig:"PDF_FONT"`
}

// Paths are the resolved on-disk locations the application uses.
type Paths struct {
	Home      string
	Settings  string
	DB        string
	Templates string
	LogFile   string
}

// LoadEnv reads PLOTER_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return Env{}, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}
	return e, nil
}

// ResolvePaths fills every location from the overrides, defaulting to
// ~/.ploter.
func (e Env) ResolvePaths() (Paths, error) {
	home := e.Home
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("resolving home directory: %w", err)
		}
		home = filepath.Join(userHome, ".ploter")
	}
	p := Paths{
		Home:      home,
		Settings:  filepath.Join(home, SettingsFile),
		DB:        e.DB,
		Templates: e.Templates,
		LogFile:   e.LogFile,
	}
	if p.DB == "" {
		p.DB = filepath.Join(home, "history.db")
	}
	if p.Templates == "" {
		p.Templates = filepath.Join(home, "templates")
	}
	if p.LogFile == "" {
		p.LogFile = filepath.Join(home, "ploter.log")
	}
	return p, nil
}
