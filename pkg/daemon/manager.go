// Package daemon manages the background harvester: its on-disk state, the
// single-instance lock and the update scheduler.
package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/papercomputeco/cultura/pkg/dotdir"
)

const (
	stateFileName = "daemon.json"
	logFileName   = "daemon.log"
	lockFileName  = "daemon.lock"
	stateVersion  = 1
)

// State is the persisted view of a running daemon.
type State struct {
	Version   int       `json:"version"`
	PID       int       `json:"pid"`
	APIURL    string    `json:"api_url"`
	StartedAt time.Time `json:"started_at"`
	Interval  string    `json:"interval"`
	LogPath   string    `json:"log_path"`

	LastUpdateAt    time.Time `json:"last_update_at,omitzero"`
	LastUpdateError string    `json:"last_update_error,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

type Manager struct {
	Dir       string
	StatePath string
	LogPath   string
	LockPath  string
}

type Lock struct {
	file *os.File
}

func NewManager(configDir string) (*Manager, error) {
	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cultura dir: %w", err)
	}

	return &Manager{
		Dir:       dir,
		StatePath: filepath.Join(dir, stateFileName),
		LogPath:   filepath.Join(dir, logFileName),
		LockPath:  filepath.Join(dir, lockFileName),
	}, nil
}

// Lock takes an exclusive lock on the daemon lock file, blocking until it
// is available.
func (m *Manager) Lock() (*Lock, error) {
	return m.lock(syscall.LOCK_EX)
}

// TryLock is Lock without blocking. It returns ErrLocked when another
// process holds the lock.
func (m *Manager) TryLock() (*Lock, error) {
	l, err := m.lock(syscall.LOCK_EX | syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return nil, ErrLocked
	}
	return l, err
}

// ErrLocked is returned by TryLock when another daemon holds the lock.
var ErrLocked = errors.New("daemon lock is held by another process")

func (m *Manager) lock(how int) (*Lock, error) {
	file, err := os.OpenFile(m.LockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), how); err != nil {
		file.Close()
		return nil, fmt.Errorf("locking daemon file: %w", err)
	}

	return &Lock{file: file}, nil
}

func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("unlocking daemon file: %w", err)
	}
	return l.file.Close()
}

// LoadState returns nil, nil when no daemon state has been written.
func (m *Manager) LoadState() (*State, error) {
	data, err := os.ReadFile(m.StatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading daemon state: %w", err)
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing daemon state: %w", err)
	}

	return state, nil
}

func (m *Manager) SaveState(state *State) error {
	if state == nil {
		return errors.New("cannot save nil state")
	}
	if state.Version == 0 {
		state.Version = stateVersion
	}
	state.UpdatedAt = time.Now()
	if state.LogPath == "" {
		state.LogPath = m.LogPath
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling daemon state: %w", err)
	}

	tmpFile, err := os.CreateTemp(m.Dir, "daemon-state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}

	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), m.StatePath); err != nil {
		return fmt.Errorf("persisting state file: %w", err)
	}

	return nil
}

// RecordUpdate stores the outcome of a scheduled update in the state file.
// A missing state file is created.
func (m *Manager) RecordUpdate(at time.Time, updateErr error) error {
	state, err := m.LoadState()
	if err != nil {
		return err
	}
	if state == nil {
		state = &State{}
	}

	state.LastUpdateAt = at
	state.LastUpdateError = ""
	if updateErr != nil {
		state.LastUpdateError = updateErr.Error()
	}

	return m.SaveState(state)
}

func (m *Manager) ClearState() error {
	if err := os.Remove(m.StatePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing daemon state: %w", err)
	}
	return nil
}

// ProcessAlive reports whether a process with the given pid exists.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
