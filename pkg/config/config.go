package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DirName = ".nichefold"

	BasePathEnv = "NICHEFOLD_BASE_PATH"
	StateDirEnv = "NICHEFOLD_STATE_DIR"
)

// DefaultBasePath is where client projects are created. It is fixed at build
// time:
//
//	go build -ldflags "-X nichefold/pkg/config.DefaultBasePath=/srv/clients"
var DefaultBasePath = "~/Documents/Clients"

type Config struct {
	// BasePath is the absolute folder holding one subfolder per client.
	BasePath string
	// StateDir holds the debug log and the build history.
	StateDir string
}

func DefaultStateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(homeDir, DirName)
}

// Load resolves the configuration from the build-time defaults and the
// environment. There is no configuration file.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	base := DefaultBasePath
	if v := strings.TrimSpace(getenv(BasePathEnv)); v != "" {
		base = v
	}
	base, err := absPath(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	state := DefaultStateDir()
	if v := strings.TrimSpace(getenv(StateDirEnv)); v != "" {
		state = v
	}
	state, err = absPath(state)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}

	return &Config{BasePath: base, StateDir: state}, nil
}

func (c *Config) HistoryPath() string {
	return filepath.Join(c.StateDir, "history.db")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "debug.json")
}

func (c *Config) EnsureStateDir() error {
	if err := os.MkdirAll(c.StateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

func absPath(path string) (string, error) {
	path = expandPath(path)
	return filepath.Abs(path)
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
