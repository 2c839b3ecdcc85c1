package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig application configuration
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Import ImportConfig `toml:"import"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig local data directory configuration
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ImportConfig import pipeline configuration
type ImportConfig struct {
	// PatternFile optional YAML file with extra header patterns per locale
	PatternFile string `toml:"pattern_file"`
	// MaxRows per-sheet row cap applied during import; 0 means no cap
	MaxRows int `toml:"max_rows"`
}

// DefaultConfig built-in defaults used when config.toml is absent
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20419,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Import: ImportConfig{},
	}
}

// GetExeDir directory of the running executable; config.toml and the data
// directory live next to it
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable directory, falling back to
// defaults when the file does not exist. Environment variables override
// individual entries afterwards.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv environment overrides, used by E2E runs and local testing
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("KONTRAKT_PATTERN_FILE"); v != "" {
		cfg.Import.PatternFile = v
	}
	if v := os.Getenv("KONTRAKT_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
}

// EnsureDataDir creates the data directory, resolving a relative path against
// the executable directory.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
