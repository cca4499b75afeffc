// Package dotdir resolves the cultura state directory that holds the config
// file, the SQLite database and the daemon bookkeeping files.
package dotdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// LocalDirName is the name of a project-local cultura directory.
	LocalDirName = ".cultura"

	// appName names the directory under the user config dir.
	appName = "cultura"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to the cultura directory,
// creating it if needed.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.cultura/ dir
//  3. $XDG_CONFIG_HOME/cultura/
//  4. ~/.config/cultura/
func (m *Manager) Target(overrideDir string) (string, error) {
	dir, err := m.resolve(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cultura directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// InitLocal creates ./.cultura/ in the current working directory and returns
// its absolute path.
func (m *Manager) InitLocal() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, LocalDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cultura directory %s: %w", dir, err)
	}
	return dir, nil
}

// Clear removes the resolved cultura directory and everything in it.
// A missing directory is not an error.
func (m *Manager) Clear(overrideDir string) (string, error) {
	dir, err := m.resolve(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("removing cultura directory %s: %w", dir, err)
	}
	return dir, nil
}

func (m *Manager) resolve(overrideDir string) (string, error) {
	switch {
	case overrideDir != "":
		return overrideDir, nil

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Join(cwd, LocalDirName), nil

	case os.Getenv("XDG_CONFIG_HOME") != "":
		return filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName), nil

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// localDirExists checks whether a .cultura/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, LocalDirName))
	return err == nil && info.IsDir()
}
