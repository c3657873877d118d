package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vvka-141/synclean/pkg/synclean"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables consulted by Resolve.
const (
	EnvPolicy        = "SYNCLEAN_POLICY"
	EnvLogDir        = "SYNCLEAN_LOG_DIR"
	EnvUserPartition = "SYNCLEAN_USER_PARTITION"
	EnvSyncPattern   = "SYNCLEAN_SYNC_PATTERN"
)

// FileConfig mirrors synclean.yaml. Every field is optional.
type FileConfig struct {
	Policy        string   `yaml:"policy"`
	LogDir        string   `yaml:"log_dir"`
	UserPartition string   `yaml:"user_partition"`
	SyncPattern   string   `yaml:"sync_pattern"`
	ExcludeDirs   []string `yaml:"exclude_dirs"`
}

// Load reads synclean.yaml from dir.
func Load(dir string) (*FileConfig, error) {
	return LoadFile(filepath.Join(dir, synclean.ConfigFileName))
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %v: %w", path, err, synclean.ErrInvalidConfig)
	}
	return &cfg, nil
}

// LoadEnvFile loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot load %s: %w", path, err)
	}
	return nil
}

// Overrides carries values given on the command line. Empty fields are unset.
type Overrides struct {
	Policy        string
	LogDir        string
	UserPartition string
	SyncPattern   string
}

// Settings is the fully resolved configuration of a run.
type Settings struct {
	Policy        synclean.Policy
	LogDir        string
	UserPartition string
	SyncPattern   string
	ExcludeDirs   []string
}

// Resolve merges flags, environment, the config file and defaults, in that
// order of precedence. file may be nil; getenv is usually os.Getenv.
func Resolve(file *FileConfig, flags Overrides, getenv func(string) string, home string) (Settings, error) {
	if file == nil {
		file = &FileConfig{}
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	pick := func(flag, env, fromFile, fallback string) string {
		for _, v := range []string{flag, getenv(env), fromFile} {
			if strings.TrimSpace(v) != "" {
				return v
			}
		}
		return fallback
	}

	policy, err := synclean.ParsePolicy(pick(flags.Policy, EnvPolicy, file.Policy, ""))
	if err != nil {
		return Settings{}, err
	}

	excludes := file.ExcludeDirs
	if len(excludes) == 0 {
		excludes = append([]string(nil), synclean.DefaultExcludedDirs...)
	}

	s := Settings{
		Policy:        policy,
		LogDir:        pick(flags.LogDir, EnvLogDir, file.LogDir, os.TempDir()),
		UserPartition: pick(flags.UserPartition, EnvUserPartition, file.UserPartition, DefaultUserPartition(home)),
		SyncPattern:   pick(flags.SyncPattern, EnvSyncPattern, file.SyncPattern, synclean.DefaultSyncPattern),
		ExcludeDirs:   excludes,
	}
	return s, nil
}

// DefaultUserPartition returns the directory holding home, with a trailing
// separator: "/Users/" for "/Users/alice".
func DefaultUserPartition(home string) string {
	sep := string(filepath.Separator)
	if home == "" {
		return sep
	}
	parent := filepath.Dir(filepath.Clean(home))
	if !strings.HasSuffix(parent, sep) {
		parent += sep
	}
	return parent
}
