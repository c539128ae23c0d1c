package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/gotify-push/internal/apperrors"
)

const (
	appDir     = "gotify"
	configName = "gotify-push"
)

var configExtensions = []string{".yml", ".yaml"}

// File is the parsed configuration file. It is read once per invocation and
// never modified afterwards.
type File struct {
	URL      string            `yaml:"url"`
	Default  Defaults          `yaml:"default"`
	TokenMap map[string]string `yaml:"tokenMap"`
}

// Defaults holds the values used when the matching argument is not given.
type Defaults struct {
	Token    string `yaml:"token"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	Priority *int   `yaml:"priority"`
}

// Locations are the base directories the default search path is built from.
type Locations struct {
	EtcDir  string
	HomeDir string
	WorkDir string
}

// DefaultLocations returns the system locations. HomeDir is left empty when
// the user's home directory cannot be determined.
func DefaultLocations() Locations {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Locations{
		EtcDir:  "/etc",
		HomeDir: home,
		WorkDir: ".",
	}
}

// SearchPaths returns the candidate configuration files in priority order.
func SearchPaths(loc Locations) []string {
	var dirs []string
	if loc.EtcDir != "" {
		dirs = append(dirs, filepath.Join(loc.EtcDir, appDir, configName))
	}
	if loc.HomeDir != "" {
		dirs = append(dirs,
			filepath.Join(loc.HomeDir, "."+appDir, configName),
			filepath.Join(loc.HomeDir, ".config", appDir, configName),
			filepath.Join(loc.HomeDir, "."+configName),
		)
	}
	if loc.WorkDir != "" {
		dirs = append(dirs, filepath.Join(loc.WorkDir, configName))
	}

	paths := make([]string, 0, len(dirs)*len(configExtensions))
	for _, base := range dirs {
		for _, ext := range configExtensions {
			paths = append(paths, base+ext)
		}
	}
	return paths
}

// FileLoader reads configuration files from disk.
type FileLoader struct {
	locations Locations
	logger    *zap.Logger
}

// NewFileLoader creates a loader searching the given locations.
func NewFileLoader(loc Locations, logger *zap.Logger) *FileLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLoader{locations: loc, logger: logger}
}

// Load reads the configuration from path, or from the first existing default
// location when path is empty.
func (l *FileLoader) Load(path string) (*File, error) {
	if path == "" {
		found, err := l.find()
		if err != nil {
			return nil, err
		}
		path = found
	}

	l.logger.Debug("loading config", zap.String("path", path))
	return loadFromFile(path)
}

func (l *FileLoader) find() (string, error) {
	candidates := SearchPaths(l.locations)
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	l.logger.Debug("no config file found", zap.Strings("candidates", candidates))
	return "", apperrors.Configf("no config file found in default locations")
}

func loadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "read config"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "config file not found"
		}
		return nil, &apperrors.ConfigError{Path: path, Msg: msg, Err: err}
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &apperrors.ConfigError{Path: path, Msg: "parse YAML", Err: err}
	}

	return &cfg, nil
}

// Token returns the token mapped to key.
func (f *File) Token(key string) (string, error) {
	token, ok := f.TokenMap[key]
	if !ok || token == "" {
		return "", apperrors.Configf("key %q not found in tokenMap", key)
	}
	return token, nil
}
