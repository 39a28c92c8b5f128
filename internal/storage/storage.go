package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/bolita/internal/pet"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

const (
	DirName  = ".bolita"
	FileBase = "pet"
)

var (
	ErrPetExists         = errors.New("a pet config already exists")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the codec by file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".toml"
}

// ConfigPath is where InitPet puts the config under baseDir.
func ConfigPath(baseDir string, format Format) string {
	return filepath.Join(baseDir, DirName, FileBase+format.Ext())
}

func Marshal(cfg pet.PetConfig, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func Unmarshal(data []byte, format Format, cfg *pet.PetConfig) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, cfg)
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadConfig reads a config over the defaults, so keys the file leaves out
// keep their default values and keys it sets (zero included) win.
func LoadConfig(path string) (pet.PetConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return pet.PetConfig{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pet.PetConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := pet.DefaultConfig("")
	if err := Unmarshal(data, format, &cfg); err != nil {
		return pet.PetConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// SaveConfig writes the config atomically (write tmp, then rename).
func SaveConfig(cfg pet.PetConfig, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}

// ConfigFiles are the names a config may have inside DirName, in lookup
// order.
var ConfigFiles = []string{FileBase + ".toml", FileBase + ".yaml", FileBase + ".yml"}

// InitPet writes a default config for name under baseDir and returns its
// path. It refuses to overwrite a config under any of ConfigFiles.
func InitPet(name, baseDir string, format Format) (string, error) {
	for _, file := range ConfigFiles {
		existing := filepath.Join(baseDir, DirName, file)
		if _, err := os.Stat(existing); err == nil {
			return "", fmt.Errorf("%w: %s", ErrPetExists, existing)
		}
	}

	cfg := pet.DefaultConfig(name)
	cfg.CreatedAt = time.Now().UTC().Truncate(time.Second)

	path := ConfigPath(baseDir, format)
	if err := SaveConfig(cfg, path); err != nil {
		return "", err
	}
	return path, nil
}
